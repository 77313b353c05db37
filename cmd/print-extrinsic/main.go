/*
NAME
  print-extrinsic - print the OpenSceneGraph look-at vectors of a camera.

DESCRIPTION
  print-extrinsic reads a 3x4 camera matrix and prints the eye, center and
  up vectors of the equivalent gluLookAt view as osg::Vec3 literals, ready
  to paste into a scene.

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

// print-extrinsic prints the look-at vectors of a camera matrix.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ausocean/calibtest/camera"
	"github.com/ausocean/utils/logging"
	"github.com/golang/geo/r3"
)

// Logging configuration.
const (
	logVerbosity = logging.Info
	logSuppress  = false
)

func main() {
	pmat := flag.String("pmat", "cameramatrix.txt", "Camera matrix file")
	flag.Parse()

	log := logging.New(logVerbosity, os.Stderr, logSuppress)

	p, err := camera.ReadMatrixFile(*pmat)
	if err != nil {
		log.Fatal("could not read camera matrix", "error", err)
	}
	la, err := camera.LookAtParams(p)
	if err != nil {
		log.Fatal("could not get look at parameters", "error", err)
	}
	err = emit(os.Stdout, la)
	if err != nil {
		log.Fatal("could not write vectors", "error", err)
	}
}

// emit writes the eye, center and up vectors of la as osg::Vec3 literals.
func emit(w io.Writer, la camera.LookAt) error {
	vecs := []struct {
		name string
		v    r3.Vector
	}{
		{"eye", la.Eye},
		{"center", la.Center},
		{"up", la.Up},
	}
	for _, v := range vecs {
		_, err := fmt.Fprintf(w, "osg::Vec3 %s = osg::Vec3(%s,%s,%s);\n", v.name, format(v.v.X), format(v.v.Y), format(v.v.Z))
		if err != nil {
			return err
		}
	}
	return nil
}

// format formats v with 12 significant digits.
func format(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
