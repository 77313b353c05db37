/*
DESCRIPTION
  gltf.go provides export of world points and camera frusta as glTF
  scenes for viewing in any glTF viewer.

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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ausocean/calibtest/camera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/mat"
)

// ErrSingularView is returned when a frustum is placed with a view matrix
// that cannot be inverted.
var ErrSingularView = errors.New("view matrix is singular")

// Scene is a glTF document under construction. Each Add call adds a mesh
// and a node of the default scene referencing it.
type Scene struct {
	doc *gltf.Document
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{doc: gltf.NewDocument()}
}

// Document returns the underlying glTF document.
func (s *Scene) Document() *gltf.Document { return s.doc }

// AddPoints adds the points in the columns of pts as a point cloud. pts is
// 3xN, or 4xN homogeneous in which case each point is divided by its
// fourth coordinate.
func (s *Scene) AddPoints(name string, pts mat.Matrix) error {
	r, n := pts.Dims()
	if r != 3 && r != 4 {
		return fmt.Errorf("%w: points have %d rows, want 3 or 4", camera.ErrShape, r)
	}
	pos := make([][3]float32, n)
	for j := range pos {
		w := 1.0
		if r == 4 {
			w = pts.At(3, j)
		}
		if w == 0 {
			return fmt.Errorf("point %d is at infinity", j)
		}
		pos[j] = [3]float32{
			float32(pts.At(0, j) / w),
			float32(pts.At(1, j) / w),
			float32(pts.At(2, j) / w),
		}
	}

	prim := &gltf.Primitive{
		Mode:       gltf.PrimitivePoints,
		Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(s.doc, pos)},
	}
	s.addNode(name, prim, gltf.DefaultMatrix)
	return nil
}

// AddFrustum adds the camera frustum with vertices verts, in OpenGL eye
// coordinates as returned by camera.Frustum, drawn as lines. The node is
// placed in the world by the inverse of the view matrix.
func (s *Scene) AddFrustum(name string, verts [9]r3.Vector, view mgl64.Mat4) error {
	if view.Det() == 0 {
		return ErrSingularView
	}
	pos := make([][3]float32, len(verts))
	for i, v := range verts {
		pos[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}

	prim := &gltf.Primitive{
		Mode:       gltf.PrimitiveLines,
		Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(s.doc, pos)},
		Indices:    gltf.Index(modeler.WriteIndices(s.doc, camera.FrustumIndices())),
	}
	// Both are column major.
	s.addNode(name, prim, [16]float64(view.Inv()))
	return nil
}

// AddSurface adds the mesh of surf as triangles with normals and surface
// coordinates.
func (s *Scene) AddSurface(name string, surf Surface) error {
	m := surf.Mesh()
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("surface %s has an empty mesh", name)
	}
	pos := make([][3]float32, len(m.Positions))
	norm := make([][3]float32, len(m.Normals))
	tc := make([][2]float32, len(m.TexCoords))
	for i, p := range m.Positions {
		pos[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
	}
	for i, n := range m.Normals {
		norm[i] = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	}
	for i, c := range m.TexCoords {
		tc[i] = [2]float32{float32(c[0]), float32(c[1])}
	}

	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: map[string]int{
			gltf.POSITION:   modeler.WritePosition(s.doc, pos),
			gltf.NORMAL:     modeler.WriteNormal(s.doc, norm),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(s.doc, tc),
		},
		Indices: gltf.Index(modeler.WriteIndices(s.doc, m.Indices)),
	}
	s.addNode(name, prim, gltf.DefaultMatrix)
	return nil
}

func (s *Scene) addNode(name string, prim *gltf.Primitive, matrix [16]float64) {
	s.doc.Meshes = append(s.doc.Meshes, &gltf.Mesh{
		Name:       name,
		Primitives: []*gltf.Primitive{prim},
	})
	s.doc.Nodes = append(s.doc.Nodes, &gltf.Node{
		Name:   name,
		Mesh:   gltf.Index(len(s.doc.Meshes) - 1),
		Matrix: matrix,
	})
	sc := s.doc.Scenes[0]
	sc.Nodes = append(sc.Nodes, len(s.doc.Nodes)-1)
}

// Save writes the scene to path, as binary glTF if path ends in .glb and
// as JSON with embedded buffers otherwise.
func (s *Scene) Save(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		return gltf.SaveBinary(s.doc, path)
	}
	for _, b := range s.doc.Buffers {
		if b.URI == "" {
			b.EmbeddedResource()
		}
	}
	return gltf.Save(s.doc, path)
}
