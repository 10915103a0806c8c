/*
Package lowpoly is an image processing library which converts images to low-poly
art: a random point set is triangulated with a Delaunay triangulation and every
triangle is filled with the source color found under its centroid.

The package also provides a command line utility. Check the supported options
by typing:

	$ lowpoly --help

Example to generate a low-poly image with the default options:

	package main

	import (
		"fmt"
		"github.com/esimov/lowpoly"
	)

	func main() {
		p := lowpoly.NewProcessor()
		p.PointCount = 1500

		dst, err := p.Render(srcImg)
		if err != nil {
			fmt.Printf("Error on triangulation process: %s", err.Error())
		}
	}

The pipeline stages are exported on their own as well: GeneratePoints,
Triangulate, SampleColor and Composite.
*/
package lowpoly
