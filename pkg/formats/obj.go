// Package formats provides parsers for Wavefront model text formats.
// OBJ (Wavefront geometry) format parser for triangulated models.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CornerRef references one face corner by its 1-based indices into the
// position, texcoord and normal streams. TexCoord and Normal are only
// meaningful when the matching Has flag is set; the format allows both
// to be omitted.
type CornerRef struct {
	Position    int
	TexCoord    int
	Normal      int
	HasTexCoord bool
	HasNormal   bool
}

// Face is a single triangle. The format requires pre-triangulated
// input, so a face always has exactly three corners.
type Face struct {
	Corners  [3]CornerRef
	Material string // active usemtl name when declared, empty if none
	Line     int    // 1-based source line, kept for diagnostics
}

// MaterialLib is a material library referenced by an mtllib directive.
// The parser records the reference only; opening the library file is
// the caller's concern.
type MaterialLib struct {
	Name string
	Line int
}

// MaterialRef is a usemtl directive. Whether the named material exists
// can only be checked once the referenced libraries are loaded, so the
// line number is kept for late diagnostics.
type MaterialRef struct {
	Name string
	Line int
}

// OBJ holds the raw attribute streams and faces of a parsed OBJ file.
// Indices in Faces are 1-based as written in the file; resolution into
// flat buffers happens in a separate pass (see internal/engine/model).
type OBJ struct {
	Name string // file identity used in warnings

	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []Face

	MaterialLibs []MaterialLib
	MaterialRefs []MaterialRef

	Warnings []Warning
}

// ParseOBJ parses OBJ data from a byte slice. The name is used to tag
// warnings. Malformed lines are skipped with a warning; the parse
// always runs to the end of the data.
func ParseOBJ(name string, data []byte) *OBJ {
	obj := &OBJ{Name: name}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	material := "" // active usemtl state
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()

		// Short lines, comments, groups and smoothing state are ignored.
		if len(text) < 3 || text[0] == '#' || text[0] == 'g' || text[0] == 's' || text[0] == ' ' {
			continue
		}

		switch {
		case text[:2] == "v ":
			if v, ok := parseFloats(text[2:], 3); ok {
				obj.Positions = append(obj.Positions, [3]float32{v[0], v[1], v[2]})
			} else {
				obj.warn(line, "invalid vertex declaration")
			}

		case text[:2] == "vt":
			if v, ok := parseFloats(text[2:], 2); ok {
				obj.TexCoords = append(obj.TexCoords, [2]float32{v[0], v[1]})
			} else {
				obj.warn(line, "invalid texture coordinate declaration")
			}

		case text[:2] == "vn":
			if v, ok := parseFloats(text[2:], 3); ok {
				obj.Normals = append(obj.Normals, [3]float32{v[0], v[1], v[2]})
			} else {
				obj.warn(line, "invalid vertex normal declaration")
			}

		case text[:2] == "f ":
			obj.parseFace(line, text[2:], material)

		case len(text) >= 7 && text[:6] == "mtllib":
			names := strings.Fields(text[6:])
			if len(names) == 0 {
				obj.warn(line, "invalid mtllib declaration")
				break
			}
			for _, n := range names {
				obj.MaterialLibs = append(obj.MaterialLibs, MaterialLib{Name: n, Line: line})
			}

		case len(text) >= 7 && text[:6] == "usemtl":
			fields := strings.Fields(text[6:])
			if len(fields) == 0 {
				obj.warn(line, "invalid usemtl declaration")
				break
			}
			material = fields[0]
			obj.MaterialRefs = append(obj.MaterialRefs, MaterialRef{Name: material, Line: line})

		default:
			obj.warn(line, "unsupported declaration")
		}
	}

	return obj
}

// ParseOBJFile parses an OBJ file from disk. An unreadable file is the
// only fatal condition; everything else surfaces through Warnings.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(path, data), nil
}

// parseFace validates triangulation and corner encoding for one face
// line (the text after the "f " prefix).
//
// Corner encodings are tried in order over the whole line: p/t/n for
// all corners, then p//n, then plain p. Mixed encodings on one line do
// not match any pattern and the face is rejected.
func (o *OBJ) parseFace(line int, rest, material string) {
	tokens := strings.Fields(rest)
	if len(tokens) > 3 {
		o.warn(line, "face has not been triangulated")
		return
	}
	if len(tokens) < 3 {
		o.warn(line, "invalid face declaration")
		return
	}

	face := Face{Material: material, Line: line}
	for _, parse := range []func(string) (CornerRef, bool){parseCornerFull, parseCornerNoTexCoord, parseCornerPosition} {
		ok := true
		for i, tok := range tokens {
			corner, matched := parse(tok)
			if !matched {
				ok = false
				break
			}
			face.Corners[i] = corner
		}
		if ok {
			o.Faces = append(o.Faces, face)
			return
		}
	}
	o.warn(line, "invalid face declaration")
}

// parseCornerFull matches the p/t/n corner encoding.
func parseCornerFull(tok string) (CornerRef, bool) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return CornerRef{}, false
	}
	p, err1 := strconv.Atoi(parts[0])
	t, err2 := strconv.Atoi(parts[1])
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return CornerRef{}, false
	}
	return CornerRef{Position: p, TexCoord: t, Normal: n, HasTexCoord: true, HasNormal: true}, true
}

// parseCornerNoTexCoord matches the p//n corner encoding.
func parseCornerNoTexCoord(tok string) (CornerRef, bool) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 || parts[1] != "" {
		return CornerRef{}, false
	}
	p, err1 := strconv.Atoi(parts[0])
	n, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return CornerRef{}, false
	}
	return CornerRef{Position: p, Normal: n, HasNormal: true}, true
}

// parseCornerPosition matches the plain p corner encoding.
func parseCornerPosition(tok string) (CornerRef, bool) {
	p, err := strconv.Atoi(tok)
	if err != nil {
		return CornerRef{}, false
	}
	return CornerRef{Position: p}, true
}

// parseFloats extracts exactly want whitespace-separated floats.
// strconv.ParseFloat always uses the period as the decimal separator,
// so parsing is independent of the process locale.
func parseFloats(s string, want int) ([]float32, bool) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, false
	}
	out := make([]float32, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, false
		}
		out[i] = float32(v)
	}
	return out, true
}

func (o *OBJ) warn(line int, msg string) {
	o.Warnings = append(o.Warnings, Warning{File: o.Name, Line: line, Message: msg})
}
