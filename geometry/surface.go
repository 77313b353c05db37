/*
DESCRIPTION
  surface.go provides display surface models, cylinders and spheres,
  read from JSON descriptions, with their meshes and named key points.

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

package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Surface model names.
const (
	ModelCylinder = "cylinder"
	ModelSphere   = "sphere"
)

// Mesh resolution.
const (
	cylinderSegments = 256
	sphereAzimuth    = 20
	sphereElevation  = 12
)

// ErrModel is returned for a surface description with an unknown model.
var ErrModel = errors.New("unknown surface model")

// Surface is a display surface onto which images are projected.
type Surface interface {
	// Mesh returns the triangulated surface.
	Mesh() *Mesh

	// KeyPoints returns named points of the surface.
	KeyPoints() map[string]r3.Vector
}

// Mesh is an indexed triangle mesh. TexCoords holds the surface
// coordinates of each vertex, each in [0, 1].
type Mesh struct {
	Positions []r3.Vector
	Normals   []r3.Vector
	TexCoords [][2]float64
	Indices   []uint32
}

func (m *Mesh) add(pos, norm r3.Vector, tc [2]float64) {
	m.Positions = append(m.Positions, pos)
	m.Normals = append(m.Normals, norm)
	m.TexCoords = append(m.TexCoords, tc)
}

// quad adds the two triangles of the quad a, b, c, d, given in order
// around its edge.
func (m *Mesh) quad(a, b, c, d uint32) {
	m.Indices = append(m.Indices, a, b, c, a, c, d)
}

// Cylinder is a cylindrical surface. Axis runs from the center of the base
// to the center of the top, so its length is the height.
type Cylinder struct {
	Radius float64
	Base   r3.Vector
	Axis   r3.Vector

	rot mgl64.Quat // Takes +Z to the axis direction.
}

// NewCylinder returns a cylinder, or an error if radius is not positive
// or axis is zero.
func NewCylinder(radius float64, base, axis r3.Vector) (*Cylinder, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("cylinder radius must be positive, got %v", radius)
	}
	if !(axis.Norm() > 0) {
		return nil, errors.New("cylinder axis is zero")
	}
	a := axis.Normalize()
	return &Cylinder{
		Radius: radius,
		Base:   base,
		Axis:   axis,
		rot:    mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{a.X, a.Y, a.Z}),
	}, nil
}

func (c *Cylinder) rotate(v r3.Vector) r3.Vector {
	w := c.rot.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: w[0], Y: w[1], Z: w[2]}
}

// World returns the point at surface coordinates tc. tc[0] is the fraction
// of a turn about the axis starting opposite the reference direction and
// tc[1] the fraction of the height.
func (c *Cylinder) World(tc [2]float64) r3.Vector {
	angle := tc[0]*2*math.Pi + math.Pi
	p := r3.Vector{X: c.Radius * math.Cos(angle), Y: c.Radius * math.Sin(angle), Z: tc[1] * c.Axis.Norm()}
	return c.rotate(p).Add(c.Base)
}

// normal returns the unit normal at tc, pointing toward the axis.
func (c *Cylinder) normal(tc [2]float64) r3.Vector {
	angle := tc[0] * 2 * math.Pi
	return c.rotate(r3.Vector{X: math.Cos(angle), Y: math.Sin(angle)})
}

// Mesh returns the side of the cylinder as a strip of quads.
func (c *Cylinder) Mesh() *Mesh {
	m := new(Mesh)
	for i := 0; i <= cylinderSegments; i++ {
		frac := float64(i) / cylinderSegments
		for _, h := range []float64{1, 0} {
			tc := [2]float64{frac, h}
			m.add(c.World(tc), c.normal(tc), tc)
		}
		if i > 0 {
			top, bot := uint32(2*i), uint32(2*i+1)
			m.quad(top-2, bot-2, bot, top)
		}
	}
	return m
}

func (c *Cylinder) KeyPoints() map[string]r3.Vector {
	return map[string]r3.Vector{
		"base":  c.Base,
		"top":   c.Base.Add(c.Axis),
		"(0,0)": c.World([2]float64{0, 0}),
		"(0,1)": c.World([2]float64{0, 1}),
	}
}

// Sphere is a spherical surface.
type Sphere struct {
	Radius float64
	Center r3.Vector
}

// NewSphere returns a sphere, or an error if radius is not positive.
func NewSphere(radius float64, center r3.Vector) (*Sphere, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}
	return &Sphere{Radius: radius, Center: center}, nil
}

// direction returns the unit vector at surface coordinates tc, the
// fractions of a turn in azimuth and of a half turn in elevation from the
// south pole.
func (s *Sphere) direction(tc [2]float64) r3.Vector {
	az := tc[0] * 2 * math.Pi
	el := tc[1]*math.Pi - math.Pi/2
	return r3.Vector{
		X: math.Cos(az) * math.Cos(el),
		Y: math.Sin(az) * math.Cos(el),
		Z: math.Sin(el),
	}
}

// World returns the point at surface coordinates tc.
func (s *Sphere) World(tc [2]float64) r3.Vector {
	return s.direction(tc).Mul(s.Radius).Add(s.Center)
}

// Mesh returns the sphere as bands of quads between parallels.
func (s *Sphere) Mesh() *Mesh {
	m := new(Mesh)
	for i := 0; i < sphereElevation; i++ {
		lo := float64(i) / sphereElevation
		hi := float64(i+1) / sphereElevation
		for j := 0; j <= sphereAzimuth; j++ {
			az := float64(j) / sphereAzimuth
			for _, el := range []float64{hi, lo} {
				tc := [2]float64{az, el}
				m.add(s.World(tc), s.direction(tc), tc)
			}
			if j > 0 {
				top := uint32(len(m.Positions) - 2)
				bot := top + 1
				m.quad(top-2, bot-2, bot, top)
			}
		}
	}
	return m
}

func (s *Sphere) KeyPoints() map[string]r3.Vector {
	return map[string]r3.Vector{
		"center":  s.Center,
		"(0,0)":   s.World([2]float64{0, 0}),
		"(0,0.5)": s.World([2]float64{0, 0.5}),
		"(0,1)":   s.World([2]float64{0, 1}),
	}
}

type vec3JSON struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

func (v *vec3JSON) vector(name string) (r3.Vector, error) {
	if v == nil {
		return r3.Vector{}, fmt.Errorf("%s is missing", name)
	}
	for i, c := range []*float64{v.X, v.Y, v.Z} {
		if c == nil {
			return r3.Vector{}, fmt.Errorf("%s.%c is missing", name, "xyz"[i])
		}
	}
	return r3.Vector{X: *v.X, Y: *v.Y, Z: *v.Z}, nil
}

type surfaceJSON struct {
	Model  string    `json:"model"`
	Radius *float64  `json:"radius"`
	Base   *vec3JSON `json:"base"`
	Axis   *vec3JSON `json:"axis"`
	Center *vec3JSON `json:"center"`
}

// ReadSurface reads a JSON surface description from r. The model field
// selects the surface. A cylinder needs radius, base and axis, and a
// sphere needs radius and center. Vectors are objects with x, y and z.
func ReadSurface(r io.Reader) (Surface, error) {
	var d surfaceJSON
	err := json.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, fmt.Errorf("could not decode surface: %w", err)
	}
	if d.Model != ModelCylinder && d.Model != ModelSphere {
		return nil, fmt.Errorf("%w: %q", ErrModel, d.Model)
	}
	if d.Radius == nil {
		return nil, fmt.Errorf("%s radius is missing", d.Model)
	}

	if d.Model == ModelSphere {
		center, err := d.Center.vector("center")
		if err != nil {
			return nil, fmt.Errorf("bad sphere: %w", err)
		}
		sph, err := NewSphere(*d.Radius, center)
		if err != nil {
			return nil, err
		}
		return sph, nil
	}

	base, err := d.Base.vector("base")
	if err != nil {
		return nil, fmt.Errorf("bad cylinder: %w", err)
	}
	axis, err := d.Axis.vector("axis")
	if err != nil {
		return nil, fmt.Errorf("bad cylinder: %w", err)
	}
	cyl, err := NewCylinder(*d.Radius, base, axis)
	if err != nil {
		return nil, err
	}
	return cyl, nil
}

// ReadSurfaceFile reads a JSON surface description from the file at path.
func ReadSurfaceFile(path string) (Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open surface file: %w", err)
	}
	defer f.Close()
	return ReadSurface(f)
}

// KeyPointMatrix returns the key points of s in name order, and the
// points as the columns of a 4xN homogeneous matrix.
func KeyPointMatrix(s Surface) ([]string, *mat.Dense) {
	kp := s.KeyPoints()
	names := make([]string, 0, len(kp))
	for name := range kp {
		names = append(names, name)
	}
	sort.Strings(names)

	pts := mat.NewDense(4, len(names), nil)
	for j, name := range names {
		p := kp[name]
		pts.SetCol(j, []float64{p.X, p.Y, p.Z, 1})
	}
	return names, pts
}
