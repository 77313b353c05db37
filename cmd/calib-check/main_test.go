/*
DESCRIPTION
  main_test.go provides testing for calib-check's default config.

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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ausocean/calibtest/calibration"
)

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calib.conf")
	err := writeDefaultConfig(path)
	if err != nil {
		t.Fatalf("could not write default config: %v", err)
	}

	got, err := calibration.ReadConfig(path)
	if err != nil {
		t.Fatalf("could not read default config: %v", err)
	}
	want := calibration.DefaultConfig()
	want.MatrixPath = defaultMatrix
	want.ImagePath = defaultImage
	if *got != *want {
		t.Errorf("did not get expected config.\nGot: %+v\nWant: %+v", *got, *want)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read config file: %v", err)
	}
	if first := strings.SplitN(string(b), "\n", 2)[0]; first != "pmat "+defaultMatrix {
		t.Errorf("did not get expected first line. Got: %q", first)
	}

	err = writeDefaultConfig(filepath.Join(t.TempDir(), "missing", "calib.conf"))
	if err == nil {
		t.Error("did not get error writing to missing directory")
	}
}
