/*
DESCRIPTION
  surface_test.go provides testing for display surface models and their
  JSON descriptions.

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
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/qmuntal/gltf"
	"gonum.org/v1/gonum/floats/scalar"
)

const surfaceTol = 1e-9

const (
	cylinderJSON = `{
	"model": "cylinder",
	"radius": 2,
	"base": {"x": 1, "y": 2, "z": 3},
	"axis": {"x": 0, "y": 0, "z": 4}
}`
	tiltedCylinderJSON = `{"model": "cylinder", "radius": 0.5, "base": {"x": 0, "y": 0, "z": 0}, "axis": {"x": 1, "y": 1, "z": 0}}`
	sphereJSON         = `{"model": "sphere", "radius": 3, "center": {"x": -1, "y": 0, "z": 2}}`
)

func near(a, b r3.Vector) bool {
	return a.Sub(b).Norm() < surfaceTol
}

func readSurface(t *testing.T, desc string) Surface {
	t.Helper()
	s, err := ReadSurface(strings.NewReader(desc))
	if err != nil {
		t.Fatalf("could not read surface: %v", err)
	}
	return s
}

func TestReadSurface(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want map[string]r3.Vector
	}{
		{
			name: "cylinder",
			desc: cylinderJSON,
			want: map[string]r3.Vector{
				"base":  {X: 1, Y: 2, Z: 3},
				"top":   {X: 1, Y: 2, Z: 7},
				"(0,0)": {X: -1, Y: 2, Z: 3},
				"(0,1)": {X: -1, Y: 2, Z: 7},
			},
		},
		{
			name: "sphere",
			desc: sphereJSON,
			want: map[string]r3.Vector{
				"center":  {X: -1, Y: 0, Z: 2},
				"(0,0)":   {X: -1, Y: 0, Z: -1},
				"(0,0.5)": {X: 2, Y: 0, Z: 2},
				"(0,1)":   {X: -1, Y: 0, Z: 5},
			},
		},
	}

	for _, test := range tests {
		kp := readSurface(t, test.desc).KeyPoints()
		if len(kp) != len(test.want) {
			t.Errorf("%s: did not get expected number of key points. Got: %d, Want: %d", test.name, len(kp), len(test.want))
		}
		for name, want := range test.want {
			got, ok := kp[name]
			if !ok {
				t.Errorf("%s: missing key point %s", test.name, name)
				continue
			}
			if !near(got, want) {
				t.Errorf("%s: did not get expected key point %s. Got: %v, Want: %v", test.name, name, got, want)
			}
		}
	}
}

func TestReadSurfaceErrors(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want error
	}{
		{name: "not json", desc: "model cylinder"},
		{name: "unknown model", desc: `{"model": "cone", "radius": 1}`, want: ErrModel},
		{name: "no model", desc: `{"radius": 1}`, want: ErrModel},
		{name: "no radius", desc: `{"model": "sphere", "center": {"x": 0, "y": 0, "z": 0}}`},
		{name: "no center", desc: `{"model": "sphere", "radius": 1}`},
		{name: "no axis", desc: `{"model": "cylinder", "radius": 1, "base": {"x": 0, "y": 0, "z": 0}}`},
		{name: "partial base", desc: `{"model": "cylinder", "radius": 1, "base": {"x": 0, "y": 0}, "axis": {"x": 0, "y": 0, "z": 1}}`},
		{name: "zero axis", desc: `{"model": "cylinder", "radius": 1, "base": {"x": 0, "y": 0, "z": 0}, "axis": {"x": 0, "y": 0, "z": 0}}`},
		{name: "negative radius", desc: `{"model": "sphere", "radius": -1, "center": {"x": 0, "y": 0, "z": 0}}`},
	}

	for _, test := range tests {
		s, err := ReadSurface(strings.NewReader(test.desc))
		if err == nil {
			t.Errorf("%s: expected error, got surface %v", test.name, s)
			continue
		}
		if s != nil {
			t.Errorf("%s: got non-nil surface with error", test.name)
		}
		if test.want != nil && !errors.Is(err, test.want) {
			t.Errorf("%s: did not get expected error. Got: %v, Want: %v", test.name, err, test.want)
		}
	}
}

func TestReadSurfaceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geom.json")
	err := os.WriteFile(path, []byte(sphereJSON), 0644)
	if err != nil {
		t.Fatalf("could not write surface file: %v", err)
	}
	s, err := ReadSurfaceFile(path)
	if err != nil {
		t.Fatalf("could not read surface file: %v", err)
	}
	if _, ok := s.(*Sphere); !ok {
		t.Errorf("did not get sphere. Got: %T", s)
	}

	_, err = ReadSurfaceFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSurfaceMesh(t *testing.T) {
	tests := []struct {
		name      string
		desc      string
		wantVerts int
		onSurface func(p r3.Vector) bool
	}{
		{
			name:      "cylinder",
			desc:      cylinderJSON,
			wantVerts: 2 * (cylinderSegments + 1),
			onSurface: func(p r3.Vector) bool {
				return scalar.EqualWithinAbs(math.Hypot(p.X-1, p.Y-2), 2, surfaceTol) && p.Z > 3-surfaceTol && p.Z < 7+surfaceTol
			},
		},
		{
			name:      "tilted cylinder",
			desc:      tiltedCylinderJSON,
			wantVerts: 2 * (cylinderSegments + 1),
			onSurface: func(p r3.Vector) bool {
				a := r3.Vector{X: 1, Y: 1}.Normalize()
				h := p.Dot(a)
				return scalar.EqualWithinAbs(p.Sub(a.Mul(h)).Norm(), 0.5, surfaceTol) && h > -surfaceTol && h < math.Sqrt2+surfaceTol
			},
		},
		{
			name:      "sphere",
			desc:      sphereJSON,
			wantVerts: 2 * sphereElevation * (sphereAzimuth + 1),
			onSurface: func(p r3.Vector) bool {
				return scalar.EqualWithinAbs(p.Sub(r3.Vector{X: -1, Z: 2}).Norm(), 3, surfaceTol)
			},
		},
	}

	for _, test := range tests {
		m := readSurface(t, test.desc).Mesh()
		if len(m.Positions) != test.wantVerts || len(m.Normals) != test.wantVerts || len(m.TexCoords) != test.wantVerts {
			t.Errorf("%s: did not get expected vertex count. Got: %d positions, %d normals, %d tex coords, Want: %d",
				test.name, len(m.Positions), len(m.Normals), len(m.TexCoords), test.wantVerts)
		}
		if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
			t.Errorf("%s: indices do not form triangles. Got: %d", test.name, len(m.Indices))
		}
		for _, idx := range m.Indices {
			if int(idx) >= len(m.Positions) {
				t.Fatalf("%s: index %d out of range", test.name, idx)
			}
		}
		for i, p := range m.Positions {
			if !test.onSurface(p) {
				t.Errorf("%s: vertex %d not on surface: %v", test.name, i, p)
				break
			}
			if n := m.Normals[i].Norm(); !scalar.EqualWithinAbs(n, 1, surfaceTol) {
				t.Errorf("%s: normal %d not unit length: %v", test.name, i, n)
				break
			}
			tc := m.TexCoords[i]
			if tc[0] < 0 || tc[0] > 1 || tc[1] < 0 || tc[1] > 1 {
				t.Errorf("%s: tex coord %d out of range: %v", test.name, i, tc)
				break
			}
		}
	}
}

// TestCylinderNormals checks that cylinder normals face the axis.
func TestCylinderNormals(t *testing.T) {
	c, err := NewCylinder(2, r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Z: 4})
	if err != nil {
		t.Fatalf("could not create cylinder: %v", err)
	}
	m := c.Mesh()
	for i, p := range m.Positions {
		toAxis := r3.Vector{X: 1 - p.X, Y: 2 - p.Y}.Normalize()
		if !near(m.Normals[i], toAxis) {
			t.Fatalf("normal %d does not face axis. Got: %v, Want: %v", i, m.Normals[i], toAxis)
		}
	}
}

func TestKeyPointMatrix(t *testing.T) {
	names, pts := KeyPointMatrix(readSurface(t, sphereJSON))
	want := []string{"(0,0)", "(0,0.5)", "(0,1)", "center"}
	if strings.Join(names, " ") != strings.Join(want, " ") {
		t.Errorf("did not get expected names. Got: %v, Want: %v", names, want)
	}
	r, c := pts.Dims()
	if r != 4 || c != len(want) {
		t.Fatalf("did not get expected dims. Got: %dx%d", r, c)
	}
	center := r3.Vector{X: pts.At(0, 3), Y: pts.At(1, 3), Z: pts.At(2, 3)}
	if !near(center, r3.Vector{X: -1, Z: 2}) || pts.At(3, 3) != 1 {
		t.Errorf("did not get expected center column. Got: %v, w: %v", center, pts.At(3, 3))
	}
}

func TestSceneSurface(t *testing.T) {
	s := NewScene()
	for _, desc := range []string{cylinderJSON, sphereJSON} {
		if err := s.AddSurface("surface", readSurface(t, desc)); err != nil {
			t.Fatalf("could not add surface: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "surface.gltf")
	if err := s.Save(path); err != nil {
		t.Fatalf("could not save scene: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("could not open scene: %v", err)
	}
	if len(doc.Meshes) != 2 {
		t.Fatalf("did not get expected meshes. Got: %d", len(doc.Meshes))
	}
	for i, wantVerts := range []int{2 * (cylinderSegments + 1), 2 * sphereElevation * (sphereAzimuth + 1)} {
		prim := doc.Meshes[i].Primitives[0]
		if prim.Mode != gltf.PrimitiveTriangles || prim.Indices == nil {
			t.Errorf("mesh %d not drawn as indexed triangles", i)
			continue
		}
		for _, attr := range []string{gltf.POSITION, gltf.NORMAL, gltf.TEXCOORD_0} {
			idx, ok := prim.Attributes[attr]
			if !ok {
				t.Errorf("mesh %d missing %s", i, attr)
				continue
			}
			if n := doc.Accessors[idx].Count; n != wantVerts {
				t.Errorf("mesh %d: did not get expected %s count. Got: %d, Want: %d", i, attr, n, wantVerts)
			}
		}
	}
}
