/*
NAME
  derive-projection - derive the OpenGL projection matrix for an HZ camera.

DESCRIPTION
  derive-projection symbolically derives the OpenGL projection matrix that
  reproduces the pixel coordinates of an HZ intrinsic matrix, and prints
  its closed form for y up and y down window coordinates.

AUTHORS
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

// derive-projection prints the closed form of the OpenGL projection matrix
// equivalent to an HZ intrinsic matrix.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/calibtest/camera"
	"github.com/ausocean/calibtest/derive"
	"github.com/ausocean/utils/logging"
)

// Logging configuration.
const (
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	wc := flag.String("wc", "", "Window coordinates to derive for, up or down (default both)")
	flag.Parse()

	log := logging.New(logVerbosity, os.Stderr, logSuppress)

	coords := []camera.WindowCoords{camera.YUp, camera.YDown}
	if *wc != "" {
		c, err := camera.ParseWindowCoords("y " + *wc)
		if err != nil {
			log.Fatal("bad window coordinates", "error", err)
		}
		coords = []camera.WindowCoords{c}
	}

	err := run(os.Stdout, coords)
	if err != nil {
		log.Fatal("could not derive projection", "error", err)
	}
}

// run writes the derived projection matrix for each of coords to w.
func run(w io.Writer, coords []camera.WindowCoords) error {
	for i, wc := range coords {
		f, err := derive.Derive(wc)
		if err != nil {
			return fmt.Errorf("could not derive for %s: %w", wc, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		_, err = fmt.Fprintf(w, "window_coords=%q\n%s\n", string(wc), f)
		if err != nil {
			return err
		}
	}
	return nil
}
