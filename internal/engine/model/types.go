// Package model provides OBJ mesh assembly utilities.
package model

import "github.com/OpenEngineDK/extensions-mesh-OBJResource/pkg/formats"

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// MaterialGroup groups consecutive triangles by material for batched rendering.
type MaterialGroup struct {
	Material   *formats.Material
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete resolved mesh data ready for GPU upload.
// Every face corner of the source file becomes its own vertex, so
// Indices is always the identity sequence 0..len(Vertices)-1.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []MaterialGroup
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the box extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// PositionBuffer returns the vertex positions as a flat float array.
func (m *Mesh) PositionBuffer() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for i := range m.Vertices {
		out = append(out, m.Vertices[i].Position[0], m.Vertices[i].Position[1], m.Vertices[i].Position[2])
	}
	return out
}

// NormalBuffer returns the vertex normals as a flat float array.
func (m *Mesh) NormalBuffer() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for i := range m.Vertices {
		out = append(out, m.Vertices[i].Normal[0], m.Vertices[i].Normal[1], m.Vertices[i].Normal[2])
	}
	return out
}

// TexCoordBuffer returns the vertex texture coordinates as a flat float array.
func (m *Mesh) TexCoordBuffer() []float32 {
	out := make([]float32, 0, len(m.Vertices)*2)
	for i := range m.Vertices {
		out = append(out, m.Vertices[i].TexCoord[0], m.Vertices[i].TexCoord[1])
	}
	return out
}
