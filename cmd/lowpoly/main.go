package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/utils"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const downloadTimeout = 30 * time.Second

var (
	// Flags
	source      = flag.String("in", "", "Source image, directory or http(s) URL")
	destination = flag.String("out", "", "Destination image or directory")
	pointCount  = flag.Int("points", lowpoly.DefaultPointCount, "Number of random points")
	blurRadius  = flag.Float64("blur", lowpoly.DefaultBlurRadius, "Blur radius applied after painting (0 disables it)")
	grayscale   = flag.Bool("gray", false, "Sample colors from the grayscale image")
	wireframe   = flag.Int("wireframe", lowpoly.WithoutWireframe, "Wireframe mode (0: without, 1: with, 2: wireframe only)")
	strokeWidth = flag.Float64("stroke", lowpoly.DefaultStrokeWidth, "Wireframe stroke width")
	noise       = flag.Int("noise", 0, "Noise factor")
	background  = flag.String("bg", "", "Background color as hex, e.g. #ffffff (default transparent)")
	backendName = flag.String("backend", "gg", "Rasterizer backend: gg or vector")
	workers     = flag.Int("workers", 1, "Number of goroutines sampling triangle colors")
	seed        = flag.Int64("seed", 0, "Random seed (0 picks a new seed every run)")
	preview     = flag.Bool("preview", false, "Show the result in the terminal (iTerm2)")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

type job struct {
	in, out string
}

func main() {
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: lowpoly -in input.jpg -out out.png")
	}
	if *verbose {
		lowpoly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	backend, ok := lowpoly.ParseBackend(*backendName)
	if !ok {
		log.Fatalf("Unknown backend: %s", *backendName)
	}

	p := &lowpoly.Processor{
		PointCount:  *pointCount,
		BlurRadius:  *blurRadius,
		Grayscale:   *grayscale,
		Wireframe:   *wireframe,
		StrokeWidth: *strokeWidth,
		Noise:       *noise,
		Backend:     backend,
		Workers:     *workers,
	}
	if *seed != 0 {
		p.Rand = rand.New(rand.NewSource(*seed))
	}
	if *background != "" {
		c, err := parseHexColor(*background)
		if err != nil {
			log.Fatalf("Invalid background color: %v", err)
		}
		p.Background = c
	}
	if err := p.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	jobs, err := collectJobs(*source, *destination)
	if err != nil {
		log.Fatal(err)
	}

	tty := term.IsTerminal(int(os.Stderr.Fd()))
	au := aurora.NewAurora(tty)

	for _, j := range jobs {
		start := time.Now()
		if err := process(p, j, tty); err != nil {
			fmt.Fprintf(os.Stderr, "\n%s %s: %v\n", au.Red("Error converting image"), j.in, err)
			continue
		}
		fmt.Printf("Generated in: %s\n", au.Green(utils.FormatTime(time.Since(start))))
		fmt.Printf("Saved as: %s %s\n\n", filepath.Base(j.out), au.Green("✓"))

		if *preview {
			imgcat.CatFile(j.out, os.Stdout)
		}
	}
}

// collectJobs maps the source to the list of images to process. A directory
// source requires a directory destination.
func collectJobs(src, dst string) ([]job, error) {
	if utils.IsURL(src) {
		return []job{{in: src, out: dst}}, nil
	}

	fs, err := os.Stat(src)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open source")
	}
	if !fs.IsDir() {
		return []job{{in: src, out: dst}}, nil
	}

	// Read destination file or directory.
	ds, err := os.Stat(dst)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get dir stats")
	}
	if !ds.IsDir() {
		return nil, errors.New("please specify a directory as destination")
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read dir")
	}

	var jobs []job
	for _, e := range entries {
		if e.IsDir() || !utils.IsSupported(e.Name()) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		jobs = append(jobs, job{
			in:  filepath.Join(src, e.Name()),
			out: filepath.Join(dst, name+".png"),
		})
	}
	return jobs, nil
}

func process(p *lowpoly.Processor, j job, tty bool) error {
	r, err := openSource(j.in)
	if err != nil {
		return err
	}
	defer r.Close()

	src, _, err := utils.DecodeImage(r)
	if err != nil {
		return err
	}

	var s *utils.Spinner
	if tty {
		s = utils.NewSpinner(os.Stderr, true)
		s.Start("Generating low-poly image...")
	}
	dst, err := p.Render(src)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	out, err := os.Create(j.out)
	if err != nil {
		return errors.Wrap(err, "unable to create the output file")
	}
	defer out.Close()

	return utils.EncodeImage(out, dst, j.out)
}

// openSource opens a local file or downloads a remote image into a temporary
// file which is removed on Close.
func openSource(src string) (io.ReadCloser, error) {
	if !utils.IsURL(src) {
		f, err := os.Open(src)
		if err != nil {
			return nil, errors.Wrap(err, "unable to open source file")
		}
		return f, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	f, err := utils.DownloadImage(ctx, src)
	if err != nil {
		return nil, err
	}
	return &tempFile{f}, nil
}

type tempFile struct {
	*os.File
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	os.Remove(t.Name())
	return err
}

// parseHexColor parses #rgb, #rrggbb and #rrggbbaa colors.
func parseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	s = strings.TrimPrefix(s, "#")

	var err error
	switch len(s) {
	case 3:
		_, err = fmt.Sscanf(s, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		_, err = fmt.Sscanf(s, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.Errorf("%q has an unsupported length", s)
	}
	return c, err
}
