/*
DESCRIPTION
  plot_test.go provides testing for grayscale conversion and overlay
  rendering.

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

package overlay

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// testImage returns a 64x48 image, black on the left half and white on the
// right.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 32; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 0; x < 32; x++ {
		img.Set(x, 0, color.Black)
	}
	return img
}

func TestToGray(t *testing.T) {
	g := toGray(testImage())
	if g.Bounds() != image.Rect(0, 0, 64, 48) {
		t.Errorf("did not get expected bounds. Got: %v", g.Bounds())
	}
	if g.GrayAt(0, 0).Y != 0 || g.GrayAt(63, 47).Y != 255 {
		t.Errorf("did not get expected values. Got: %v, %v", g.GrayAt(0, 0), g.GrayAt(63, 47))
	}
	if toGray(g) != g {
		t.Errorf("grayscale image was copied")
	}

	// Images not anchored at the origin are moved to it.
	sub := testImage().SubImage(image.Rect(32, 10, 64, 20))
	if b := toGray(sub).Bounds(); b != image.Rect(0, 0, 32, 10) {
		t.Errorf("did not get expected sub image bounds. Got: %v", b)
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.png")

	cal := CalibrationStyle
	cal.Name, cal.U, cal.V = "calibration", []float64{10, 20, 30}, []float64{5, 25, 40}
	gl := GraphicsStyle
	gl.Name, gl.U, gl.V = "graphics", []float64{10, 20, 30}, []float64{5, 25, 40}

	err := Render(path, "test", toGray(testImage()), cal, gl)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open rendered overlay: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("could not decode rendered overlay: %v", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 || cfg.Width <= cfg.Height {
		t.Errorf("did not get expected overlay size. Got: %dx%d", cfg.Width, cfg.Height)
	}

	bad := Points{Name: "bad", U: []float64{1, 2}, V: []float64{1}}
	if err := Render(path, "bad", testImage(), bad); err == nil {
		t.Errorf("did not get error for mismatched point set")
	}
	if err := Render(path, "empty", image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Errorf("did not get error for empty background")
	}
}

func TestPlotterUV(t *testing.T) {
	xy := plotterUV([]float64{1, 2}, []float64{0, 48}, 48)
	if xy[0].X != 1 || xy[0].Y != 48 || xy[1].X != 2 || xy[1].Y != 0 {
		t.Errorf("did not get expected plot coordinates. Got: %v", xy)
	}
}
