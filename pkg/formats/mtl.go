// MTL (Wavefront material library) format parser.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Material is a named MTL material record. Colors are RGBA; the MTL
// color directives only set RGB, alpha stays at 1. DiffuseMap and
// ShaderFile are paths relative to the library file that declared them.
//
// Texture and Shader are opaque host resources attached by the loader
// after parsing; the parser itself never touches them.
type Material struct {
	Name       string
	Ambient    [4]float32
	Diffuse    [4]float32
	Specular   [4]float32
	Shininess  float32
	DiffuseMap string
	ShaderFile string

	Texture any
	Shader  any
}

// NewMaterial returns a material with the MTL format defaults:
// ambient (.2,.2,.2,1), diffuse (.8,.8,.8,1), specular (1,1,1,1) and
// shininess 0.
func NewMaterial(name string) *Material {
	return &Material{
		Name:     name,
		Ambient:  [4]float32{0.2, 0.2, 0.2, 1.0},
		Diffuse:  [4]float32{0.8, 0.8, 0.8, 1.0},
		Specular: [4]float32{1.0, 1.0, 1.0, 1.0},
	}
}

// MaterialTable maps material names to their records. A table may be
// populated from several MTL files; later declarations of a name
// replace earlier ones outright.
type MaterialTable map[string]*Material

// Merge copies all materials from other into the table, overriding
// entries with the same name.
func (t MaterialTable) Merge(other MaterialTable) {
	for name, m := range other {
		t[name] = m
	}
}

// MTL is a parsed material library file.
type MTL struct {
	Name      string // file identity used in warnings
	Materials MaterialTable
	Warnings  []Warning
}

// ParseMTL parses MTL data from a byte slice. The name is used to tag
// warnings with the library's own identity. Directives that appear
// before any newmtl, or that would overwrite an already attached
// texture or shader, are dropped with a warning.
func ParseMTL(name string, data []byte) *MTL {
	mtl := &MTL{Name: name, Materials: MaterialTable{}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var current *Material
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		if len(text) < 3 || text[0] == '#' || text[0] == ' ' {
			continue
		}

		switch {
		case len(text) >= 7 && text[:6] == "newmtl":
			fields := strings.Fields(text[6:])
			if len(fields) == 0 {
				mtl.warn(line, "invalid newmtl declaration")
				break
			}
			current = NewMaterial(fields[0])
			mtl.Materials[current.Name] = current

		case text[:2] == "Ka":
			mtl.setColor(line, current, text[2:], "Ka", func(m *Material, rgb []float32) {
				m.Ambient[0], m.Ambient[1], m.Ambient[2] = rgb[0], rgb[1], rgb[2]
			})

		case text[:2] == "Kd":
			mtl.setColor(line, current, text[2:], "Kd", func(m *Material, rgb []float32) {
				m.Diffuse[0], m.Diffuse[1], m.Diffuse[2] = rgb[0], rgb[1], rgb[2]
			})

		case text[:2] == "Ks":
			mtl.setColor(line, current, text[2:], "Ks", func(m *Material, rgb []float32) {
				m.Specular[0], m.Specular[1], m.Specular[2] = rgb[0], rgb[1], rgb[2]
			})

		case text[:2] == "Ns":
			v, ok := parseFloats(text[2:], 1)
			if !ok {
				mtl.warn(line, "invalid Ns declaration")
				break
			}
			if current == nil {
				mtl.warn(line, "Ns declaration without newmtl")
				break
			}
			current.Shininess = v[0]

		case len(text) >= 7 && text[:6] == "map_Kd":
			fields := strings.Fields(text[6:])
			if len(fields) == 0 {
				mtl.warn(line, "invalid map_Kd declaration")
				break
			}
			if current == nil {
				mtl.warn(line, "map_Kd declaration without newmtl")
				break
			}
			if current.DiffuseMap != "" {
				mtl.warn(line, "multiple map_Kd declarations for one material")
				break
			}
			current.DiffuseMap = fields[0]

		case len(text) >= 7 && text[:6] == "shader":
			fields := strings.Fields(text[6:])
			if len(fields) == 0 {
				mtl.warn(line, "invalid shader declaration")
				break
			}
			if current == nil {
				mtl.warn(line, "shader declaration without newmtl")
				break
			}
			if current.ShaderFile != "" {
				mtl.warn(line, "multiple shader declarations for one material")
				break
			}
			current.ShaderFile = fields[0]

			// All other directives are ignored.
		}
	}

	return mtl
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(path, data), nil
}

// setColor applies an RGB color directive under the newmtl guard.
// Alpha is left untouched.
func (m *MTL) setColor(line int, current *Material, rest, directive string, apply func(*Material, []float32)) {
	rgb, ok := parseFloats(rest, 3)
	if !ok {
		m.warn(line, "invalid "+directive+" declaration")
		return
	}
	if current == nil {
		m.warn(line, directive+" declaration without newmtl")
		return
	}
	apply(current, rgb)
}

func (m *MTL) warn(line int, msg string) {
	m.Warnings = append(m.Warnings, Warning{File: m.Name, Line: line, Message: msg})
}
