/*
DESCRIPTION
  check.go provides the calibration check: projection of points through
  both pipelines, overlay rendering and scene export.

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
	"fmt"
	"time"

	"github.com/ausocean/calibtest/camera"
	"github.com/ausocean/calibtest/geometry"
	"github.com/ausocean/calibtest/overlay"
	"github.com/ausocean/utils/logging"
	"gonum.org/v1/gonum/mat"
)

// Pipelines disagreeing by more than this many pixels are reported.
const residualTolerance = 1e-6

// Checker projects world points through a camera calibration and through
// the OpenGL pipeline built from it.
type Checker struct {
	decomp *camera.Decomposition
	proj   *mat.Dense
	vp     camera.Viewport
	log    logging.Logger
}

// NewChecker returns a Checker for the camera matrix p rendering into vp.
func NewChecker(p mat.Matrix, vp camera.Viewport, log logging.Logger) (*Checker, error) {
	d, err := camera.Decompose(p)
	if err != nil {
		return nil, fmt.Errorf("could not decompose camera matrix: %w", err)
	}
	proj, err := camera.GraphicsProjection(d.Intrinsic, vp)
	if err != nil {
		return nil, fmt.Errorf("could not get projection matrix: %w", err)
	}
	log.Debug("decomposed camera matrix",
		"intrinsic", fmt.Sprintf("%v", mat.Formatted(d.Intrinsic, mat.FormatPython())),
		"center", fmt.Sprintf("%v", mat.Formatted(d.Center.T(), mat.FormatPython())),
	)
	return &Checker{decomp: d, proj: proj, vp: vp, log: log}, nil
}

// Decomposition returns the decomposed camera matrix.
func (c *Checker) Decomposition() *camera.Decomposition { return c.decomp }

// Projection returns the OpenGL projection matrix.
func (c *Checker) Projection() *mat.Dense { return c.proj }

// Check projects the homogeneous world points in the columns of pts
// through both pipelines.
func (c *Checker) Check(pts mat.Matrix) (*Results, error) {
	start := time.Now()
	hz, err := camera.ProjectHZ(c.decomp, pts)
	if err != nil {
		return nil, fmt.Errorf("could not project through calibration: %w", err)
	}
	gl, err := camera.ProjectGraphics(c.decomp, c.proj, c.vp, pts)
	if err != nil {
		return nil, fmt.Errorf("could not project through graphics pipeline: %w", err)
	}

	_, n := hz.Dims()
	res := NewResults(n)
	for j := 0; j < n; j++ {
		res.Add(hz.At(0, j), hz.At(1, j), gl.At(0, j), gl.At(1, j))
	}
	c.log.Debug("projected points", "points", n, "duration", time.Since(start))

	if max := res.MaxResidual(); max > residualTolerance {
		c.log.Warning("pipelines disagree", "maxResidual", max, "meanResidual", res.MeanResidual())
	}
	return res, nil
}

// Run performs the check described by cfg: a cylinder of points is
// projected through the calibration in cfg.MatrixPath and the matching
// OpenGL pipeline, the points are drawn over the reference image and the
// camera and points are exported as a glTF scene. The key points of a
// display surface, if given, are checked too and its mesh exported.
func Run(cfg *Config, log logging.Logger) (*Results, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	p, err := camera.ReadMatrixFile(cfg.MatrixPath)
	if err != nil {
		return nil, err
	}
	img, err := overlay.LoadGray(cfg.ImagePath)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	vp := camera.Viewport{
		X0:     cfg.X0,
		Y0:     cfg.Y0,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
		ZNear:  cfg.ZNear,
		ZFar:   cfg.ZFar,
		Coords: cfg.Coords,
	}
	log.Info("checking calibration", "matrix", cfg.MatrixPath, "width", vp.Width, "height", vp.Height, "windowCoords", string(vp.Coords))

	c, err := NewChecker(p, vp, log)
	if err != nil {
		return nil, err
	}
	pts, err := geometry.CylinderPoints(true, cfg.Segments)
	if err != nil {
		return nil, fmt.Errorf("could not generate points: %w", err)
	}
	res, err := c.Check(pts)
	if err != nil {
		return nil, err
	}
	log.Info("checked calibration", "points", res.Len(), "meanResidual", res.MeanResidual(), "maxResidual", res.MaxResidual())

	var surf geometry.Surface
	if cfg.SurfacePath != "" {
		surf, err = geometry.ReadSurfaceFile(cfg.SurfacePath)
		if err != nil {
			return nil, err
		}
		err = c.checkSurface(surf)
		if err != nil {
			return nil, err
		}
	}

	if cfg.OutPath != "" {
		hz := overlay.CalibrationStyle
		hz.Name, hz.U, hz.V = "calibration", res.U, res.V
		gl := overlay.GraphicsStyle
		gl.Name, gl.U, gl.V = "OpenGL", res.GLU, res.GLV
		err = overlay.Render(cfg.OutPath, fmt.Sprintf("window coords %s", vp.Coords), img, hz, gl)
		if err != nil {
			return nil, fmt.Errorf("could not render overlay: %w", err)
		}
		log.Info("wrote overlay", "path", cfg.OutPath)
	}

	if cfg.GLTFPath != "" {
		err = c.exportScene(cfg.GLTFPath, pts, surf)
		if err != nil {
			return nil, fmt.Errorf("could not export scene: %w", err)
		}
		log.Info("wrote scene", "path", cfg.GLTFPath)
	}
	return res, nil
}

// checkSurface projects the key points of surf and logs where they land.
func (c *Checker) checkSurface(surf geometry.Surface) error {
	names, pts := geometry.KeyPointMatrix(surf)
	res, err := c.Check(pts)
	if err != nil {
		return fmt.Errorf("could not check surface key points: %w", err)
	}
	for i, name := range names {
		c.log.Info("surface key point", "name", name, "u", res.U[i], "v", res.V[i], "residual", res.Residual[i])
	}
	return nil
}

// exportScene saves the points, the camera frustum placed by its view
// matrix, and surf if not nil, as a glTF scene.
func (c *Checker) exportScene(path string, pts mat.Matrix, surf geometry.Surface) error {
	la, err := c.decomp.LookAt()
	if err != nil {
		return fmt.Errorf("could not get view: %w", err)
	}
	verts, err := camera.Frustum(c.proj)
	if err != nil {
		return fmt.Errorf("could not get frustum: %w", err)
	}

	s := geometry.NewScene()
	err = s.AddPoints("cylinder", pts)
	if err != nil {
		return err
	}
	err = s.AddFrustum("camera", verts, camera.ViewMatrix(la))
	if err != nil {
		return err
	}
	if surf != nil {
		err = s.AddSurface("surface", surf)
		if err != nil {
			return err
		}
	}
	return s.Save(path)
}
