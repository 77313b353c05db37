/*
DESCRIPTION
  plot.go provides rendering of projected points over a reference image.

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

// Package overlay renders projected calibration points over the camera
// image they should line up with.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	plotdraw "gonum.org/v1/plot/vg/draw"
)

// Width of rendered overlays. Height follows the image aspect ratio.
const plotWidth = 20 * vg.Centimeter

// Points is a named set of pixel coordinates, with v counting down from
// the top of the image.
type Points struct {
	Name  string
	U, V  []float64
	Glyph plotdraw.GlyphDrawer
	Color color.Color
}

// Default point styles for the two projection pipelines.
var (
	CalibrationStyle = Points{Glyph: plotdraw.CircleGlyph{}, Color: color.RGBA{R: 255, A: 255}}
	GraphicsStyle    = Points{Glyph: plotdraw.CrossGlyph{}, Color: color.RGBA{G: 200, B: 255, A: 255}}
)

// toGray returns img as 8-bit grayscale.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// Render draws the point sets over bg and saves the result as a PNG at
// path.
func Render(path, title string, bg image.Image, sets ...Points) error {
	b := bg.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return errors.New("empty background image")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "u (px)"
	p.Y.Label.Text = "v (px)"
	p.X.Min, p.X.Max = 0, w
	p.Y.Min, p.Y.Max = 0, h
	p.Add(plotter.NewImage(bg, 0, 0, w, h))

	for _, set := range sets {
		if len(set.U) != len(set.V) {
			return fmt.Errorf("point set %s has %d u and %d v values", set.Name, len(set.U), len(set.V))
		}
		s, err := plotter.NewScatter(plotterUV(set.U, set.V, h))
		if err != nil {
			return fmt.Errorf("could not create scatter for %s: %w", set.Name, err)
		}
		if set.Glyph != nil {
			s.GlyphStyle.Shape = set.Glyph
		}
		if set.Color != nil {
			s.GlyphStyle.Color = set.Color
		}
		p.Add(s)
		p.Legend.Add(set.Name, s)
	}

	err := p.Save(plotWidth, vg.Length(h/w)*plotWidth, path)
	if err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}

// plotterUV provides plotter.XYs from pixel coordinates, flipping v so
// the image top is at the top of the plot.
func plotterUV(u, v []float64, height float64) plotter.XYs {
	xy := make(plotter.XYs, len(u))
	for i := range u {
		xy[i].X = u[i]
		xy[i].Y = height - v[i]
	}
	return xy
}
