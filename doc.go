/*
Package motograph decomposes a quadrilateral mesh into rectangular patches by tracing
a motorcycle graph.

A motorcycle starts on every outgoing half-edge of every extraordinary vertex and moves
straight across the quads, one edge per round, leaving a trail of graph edges. It stops
when it reaches the boundary, an extraordinary vertex or an earlier trail, or when it
meets another motorcycle head on. Once all motorcycles have crashed, the closed loops
of graph edges are traced and the faces enclosed by each loop get the same patch id.

The package provides a command line interface, supporting various flags for the input,
the labeled output and the preview image. To check the supported commands type:

	$ motograph --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/motograph"
		"github.com/esimov/motograph/obj"
	)

	func main() {
		mesh, err := obj.Load(os.Stdin)
		if err != nil {
			fmt.Printf("Error reading the mesh: %s", err.Error())
			return
		}
		res, err := motograph.Decompose(mesh)
		if err != nil {
			fmt.Printf("Error decomposing the mesh: %s", err.Error())
			return
		}
		fmt.Println(res.Stats)
	}
*/
package motograph
