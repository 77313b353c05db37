/*
DESCRIPTION
  config.go provides reading and writing of calibration check
  configuration files.

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

package calibration

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ausocean/calibtest/camera"
	"github.com/ausocean/utils/filemap"
	"github.com/ausocean/utils/sliceutils"
)

// Config keys.
const (
	keyMatrix   = "pmat"
	keyImage    = "image"
	keyCoords   = "wc"
	keyX0       = "x0"
	keyY0       = "y0"
	keyZNear    = "znear"
	keyZFar     = "zfar"
	keySegments = "segs"
	keyOut      = "out"
	keyGLTF     = "gltf"
	keySurface  = "surface"
)

// Config defaults.
const (
	defaultZNear    = 0.1
	defaultZFar     = 1000.0
	defaultSegments = 50
	defaultOut      = "overlay.png"
)

var (
	configParams  = []string{keyMatrix, keyImage, keyCoords, keyX0, keyY0, keyZNear, keyZFar, keySegments, keyOut, keyGLTF, keySurface}
	configNumbers = []string{keyX0, keyY0, keyZNear, keyZFar}
	configInts    = []string{keySegments}
)

// Config holds the parameters of a calibration check.
type Config struct {
	MatrixPath string // Camera matrix file.
	ImagePath  string // Reference image taken by the camera.
	OutPath    string // Overlay PNG, not written if empty.
	GLTFPath   string // glTF scene, not written if empty.

	// JSON display surface description. Its key points are checked and
	// its mesh exported with the scene when set.
	SurfacePath string

	Coords      camera.WindowCoords
	X0, Y0      float64
	ZNear, ZFar float64
	Segments    int
}

// DefaultConfig returns a config with default values for everything but
// the input paths.
func DefaultConfig() *Config {
	return &Config{
		OutPath:  defaultOut,
		Coords:   camera.YDown,
		ZNear:    defaultZNear,
		ZFar:     defaultZFar,
		Segments: defaultSegments,
	}
}

// ReadConfig reads a config file of space separated key value lines.
func ReadConfig(path string) (*Config, error) {
	m, err := filemap.ReadFrom(path, "\n", " ")
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	return ParseConfig(m)
}

// ParseConfig returns the config for the key value pairs in m. The pmat
// and image keys are required and defaults are supplied for the others.
func ParseConfig(m map[string]string) (*Config, error) {
	for _, name := range configParams {
		val, present := m[name]
		if !present {
			switch name {
			case keyMatrix:
				return nil, errors.New("required pmat param is missing")
			case keyImage:
				return nil, errors.New("required image param is missing")
			}
			continue
		}
		if sliceutils.ContainsString(configNumbers, name) {
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				return nil, fmt.Errorf("expected number for config param %s: %w", name, err)
			}
		}
		if sliceutils.ContainsString(configInts, name) {
			if _, err := strconv.Atoi(val); err != nil {
				return nil, fmt.Errorf("expected int for config param %s: %w", name, err)
			}
		}
	}

	c := DefaultConfig()
	c.MatrixPath = m[keyMatrix]
	c.ImagePath = m[keyImage]
	if v, ok := m[keyOut]; ok {
		c.OutPath = v
	}
	c.GLTFPath = m[keyGLTF]
	c.SurfacePath = m[keySurface]

	if v, ok := m[keyCoords]; ok {
		wc, err := camera.ParseWindowCoords("y " + v)
		if err != nil {
			return nil, fmt.Errorf("bad wc param: %w", err)
		}
		c.Coords = wc
	}

	floatParams := []struct {
		name string
		dst  *float64
	}{
		{keyX0, &c.X0},
		{keyY0, &c.Y0},
		{keyZNear, &c.ZNear},
		{keyZFar, &c.ZFar},
	}
	for _, p := range floatParams {
		if v, ok := m[p.name]; ok {
			*p.dst, _ = strconv.ParseFloat(v, 64)
		}
	}
	if v, ok := m[keySegments]; ok {
		c.Segments, _ = strconv.Atoi(v)
	}
	return c, c.Validate()
}

// Validate returns an error if the config cannot be used for a check.
func (c *Config) Validate() error {
	switch {
	case c.MatrixPath == "":
		return errors.New("no camera matrix file")
	case c.ImagePath == "":
		return errors.New("no reference image")
	case c.Segments <= 0:
		return fmt.Errorf("segments must be positive, got %d", c.Segments)
	case c.ZNear == c.ZFar:
		return fmt.Errorf("znear and zfar are both %v", c.ZNear)
	}
	return c.Coords.Validate()
}

// Map returns the config as key value pairs.
func (c *Config) Map() map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return map[string]string{
		keyMatrix:   c.MatrixPath,
		keyImage:    c.ImagePath,
		keyCoords:   strings.TrimPrefix(string(c.Coords), "y "),
		keyX0:       f(c.X0),
		keyY0:       f(c.Y0),
		keyZNear:    f(c.ZNear),
		keyZFar:     f(c.ZFar),
		keySegments: strconv.Itoa(c.Segments),
		keyOut:      c.OutPath,
		keyGLTF:     c.GLTFPath,
		keySurface:  c.SurfacePath,
	}
}

// WriteConfig writes c to path in key order.
func WriteConfig(path string, c *Config) error {
	return filemap.WriteTo(path, "\n", " ", c.Map(), configParams)
}
