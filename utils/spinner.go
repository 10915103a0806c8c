package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
)

// Spinner initializes the process indicator.
type Spinner struct {
	out      io.Writer
	au       aurora.Aurora
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to out. Colors are used only
// when colors is true.
func NewSpinner(out io.Writer, colors bool) *Spinner {
	return &Spinner{out: out, au: aurora.NewAurora(colors)}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{}, 1)
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.out, "\r")
					return
				default:
					fmt.Fprintf(s.out, "\r%s %s", message, s.au.Green(string(r)))
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits until it has cleared its line.
func (s *Spinner) Stop() {
	s.stopChan <- struct{}{}
	s.wg.Wait()
}
