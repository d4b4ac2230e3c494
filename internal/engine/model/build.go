package model

import (
	"fmt"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/pkg/formats"
)

// Build resolves the raw OBJ attribute streams into a flat mesh.
//
// Each face corner is materialized as its own output vertex; corners
// are never shared even when their index triples coincide, which keeps
// the index buffer an identity map at the cost of some memory. Faces
// referencing indices outside the declared streams are skipped with a
// warning and assembly continues with the next face.
//
// Material binding is per face: consecutive faces sharing a material
// form one MaterialGroup. Faces with no usemtl in effect, or naming a
// material missing from the table, get a default material.
func Build(obj *formats.OBJ, materials formats.MaterialTable) (*Mesh, []formats.Warning) {
	var warnings []formats.Warning
	warn := func(line int, msg string) {
		warnings = append(warnings, formats.Warning{File: obj.Name, Line: line, Message: msg})
	}

	// usemtl names can only be checked against the table once all
	// libraries are loaded, so undefined references surface here with
	// the directive's own line number.
	for _, ref := range obj.MaterialRefs {
		if _, ok := materials[ref.Name]; !ok {
			warn(ref.Line, fmt.Sprintf("material %q is not defined in any material library", ref.Name))
		}
	}

	defaultMaterial := formats.NewMaterial("")

	mesh := &Mesh{
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	var current *formats.Material
	for _, face := range obj.Faces {
		corners, ok := resolveFace(obj, face, warn)
		if !ok {
			continue
		}

		mat := defaultMaterial
		if face.Material != "" {
			if m, found := materials[face.Material]; found {
				mat = m
			}
		}

		// Start a new group whenever the bound material changes.
		if mat != current {
			mesh.Groups = append(mesh.Groups, MaterialGroup{
				Material:   mat,
				StartIndex: int32(len(mesh.Indices)),
			})
			current = mat
		}

		for i, v := range corners {
			if v.Normal == ([3]float32{}) && face.Corners[i].HasNormal {
				warn(face.Line, fmt.Sprintf("normal[%d] is the zero vector", i))
			}
			updateBounds(&mesh.Bounds, v.Position)
			mesh.Indices = append(mesh.Indices, uint32(len(mesh.Vertices)))
			mesh.Vertices = append(mesh.Vertices, v)
		}
		mesh.Groups[len(mesh.Groups)-1].IndexCount += 3
	}

	if len(mesh.Vertices) == 0 {
		mesh.Bounds = Bounds{}
		mesh.Groups = nil
	}

	return mesh, warnings
}

// resolveFace looks up the three corners of a face in the raw streams,
// converting the file's 1-based indices to 0-based. Any out-of-range
// index rejects the whole face.
func resolveFace(obj *formats.OBJ, face formats.Face, warn func(int, string)) ([3]Vertex, bool) {
	var out [3]Vertex
	for i, c := range face.Corners {
		if c.Position < 1 || c.Position > len(obj.Positions) {
			warn(face.Line, fmt.Sprintf("face references undeclared vertex %d", c.Position))
			return out, false
		}
		out[i].Position = obj.Positions[c.Position-1]

		if c.HasTexCoord {
			if c.TexCoord < 1 || c.TexCoord > len(obj.TexCoords) {
				warn(face.Line, fmt.Sprintf("face references undeclared texture coordinate %d", c.TexCoord))
				return out, false
			}
			out[i].TexCoord = obj.TexCoords[c.TexCoord-1]
		}

		if c.HasNormal {
			if c.Normal < 1 || c.Normal > len(obj.Normals) {
				warn(face.Line, fmt.Sprintf("face references undeclared normal %d", c.Normal))
				return out, false
			}
			out[i].Normal = obj.Normals[c.Normal-1]
		}
	}
	return out, true
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
