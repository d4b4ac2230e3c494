package formats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOBJ_VertexStreams(t *testing.T) {
	data := []byte(strings.Join([]string{
		"# comment line",
		"v 0 0 0",
		"v 1.5 2.5 3.5",
		"vt 0.25 0.75",
		"vn 0 0 1",
		"",
		"g group_is_ignored",
		"s 1",
	}, "\n"))

	obj := ParseOBJ("test.obj", data)

	if len(obj.Positions) != 2 {
		t.Fatalf("position count = %d, want 2", len(obj.Positions))
	}
	if obj.Positions[1] != [3]float32{1.5, 2.5, 3.5} {
		t.Errorf("Positions[1] = %v, want [1.5 2.5 3.5]", obj.Positions[1])
	}
	if len(obj.TexCoords) != 1 || obj.TexCoords[0] != [2]float32{0.25, 0.75} {
		t.Errorf("TexCoords = %v, want [[0.25 0.75]]", obj.TexCoords)
	}
	if len(obj.Normals) != 1 || obj.Normals[0] != [3]float32{0, 0, 1} {
		t.Errorf("Normals = %v, want [[0 0 1]]", obj.Normals)
	}
	if len(obj.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", obj.Warnings)
	}
}

func TestParseOBJ_MalformedLines(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantWarn string
	}{
		{"vertex too few fields", "v 1 2", "invalid vertex declaration"},
		{"vertex too many fields", "v 1 2 3 4", "invalid vertex declaration"},
		{"vertex non-numeric", "v a b c", "invalid vertex declaration"},
		{"texcoord wrong arity", "vt 0.5", "invalid texture coordinate declaration"},
		{"normal wrong arity", "vn 1 2", "invalid vertex normal declaration"},
		{"unsupported directive", "vp 1 2 3", "unsupported declaration"},
		{"face not triangulated", "f 1 2 3 4", "face has not been triangulated"},
		{"face too few corners", "f 1 2", "invalid face declaration"},
		{"face mixed encodings", "f 1/1/1 2//1 3/3/1", "invalid face declaration"},
		{"face p/t encoding unsupported", "f 1/1 2/2 3/3", "invalid face declaration"},
		{"face non-numeric corner", "f a b c", "invalid face declaration"},
		{"empty mtllib", "mtllib ", "invalid mtllib declaration"},
		{"empty usemtl", "usemtl ", "invalid usemtl declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := ParseOBJ("test.obj", []byte(tt.line+"\n"))
			if len(obj.Positions)+len(obj.TexCoords)+len(obj.Normals)+len(obj.Faces) != 0 {
				t.Errorf("malformed line appended data: %+v", obj)
			}
			if len(obj.Warnings) != 1 {
				t.Fatalf("warning count = %d, want 1 (%v)", len(obj.Warnings), obj.Warnings)
			}
			w := obj.Warnings[0]
			if w.Message != tt.wantWarn {
				t.Errorf("warning = %q, want %q", w.Message, tt.wantWarn)
			}
			if w.Line != 1 {
				t.Errorf("warning line = %d, want 1", w.Line)
			}
			if w.File != "test.obj" {
				t.Errorf("warning file = %q, want test.obj", w.File)
			}
		})
	}
}

func TestParseOBJ_ShortLinesIgnored(t *testing.T) {
	obj := ParseOBJ("test.obj", []byte("v\nvt\nf\nx\n\n"))
	if len(obj.Warnings) != 0 {
		t.Errorf("short lines produced warnings: %v", obj.Warnings)
	}
}

func TestParseOBJ_FaceEncodings(t *testing.T) {
	tests := []struct {
		name string
		line string
		want [3]CornerRef
	}{
		{
			name: "full p/t/n",
			line: "f 1/2/3 4/5/6 7/8/9",
			want: [3]CornerRef{
				{Position: 1, TexCoord: 2, Normal: 3, HasTexCoord: true, HasNormal: true},
				{Position: 4, TexCoord: 5, Normal: 6, HasTexCoord: true, HasNormal: true},
				{Position: 7, TexCoord: 8, Normal: 9, HasTexCoord: true, HasNormal: true},
			},
		},
		{
			name: "no texcoord p//n",
			line: "f 1//1 2//1 3//1",
			want: [3]CornerRef{
				{Position: 1, Normal: 1, HasNormal: true},
				{Position: 2, Normal: 1, HasNormal: true},
				{Position: 3, Normal: 1, HasNormal: true},
			},
		},
		{
			name: "position only",
			line: "f 1 2 3",
			want: [3]CornerRef{
				{Position: 1},
				{Position: 2},
				{Position: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := ParseOBJ("test.obj", []byte(tt.line+"\n"))
			if len(obj.Faces) != 1 {
				t.Fatalf("face count = %d, want 1 (warnings: %v)", len(obj.Faces), obj.Warnings)
			}
			if obj.Faces[0].Corners != tt.want {
				t.Errorf("corners = %+v, want %+v", obj.Faces[0].Corners, tt.want)
			}
		})
	}
}

func TestParseOBJ_MaterialState(t *testing.T) {
	data := []byte(strings.Join([]string{
		"mtllib scene.mtl extra.mtl",
		"v 0 0 0",
		"v 1 0 0",
		"v 0 1 0",
		"f 1 2 3",
		"usemtl red",
		"f 1 2 3",
		"f 3 2 1",
		"usemtl blue",
		"f 1 2 3",
	}, "\n"))

	obj := ParseOBJ("test.obj", data)

	if len(obj.MaterialLibs) != 2 {
		t.Fatalf("material lib count = %d, want 2", len(obj.MaterialLibs))
	}
	if obj.MaterialLibs[0].Name != "scene.mtl" || obj.MaterialLibs[1].Name != "extra.mtl" {
		t.Errorf("material libs = %+v", obj.MaterialLibs)
	}

	if len(obj.Faces) != 4 {
		t.Fatalf("face count = %d, want 4", len(obj.Faces))
	}
	wantMaterials := []string{"", "red", "red", "blue"}
	for i, want := range wantMaterials {
		if obj.Faces[i].Material != want {
			t.Errorf("Faces[%d].Material = %q, want %q", i, obj.Faces[i].Material, want)
		}
	}

	if len(obj.MaterialRefs) != 2 {
		t.Fatalf("material ref count = %d, want 2", len(obj.MaterialRefs))
	}
	if obj.MaterialRefs[0].Name != "red" || obj.MaterialRefs[0].Line != 6 {
		t.Errorf("MaterialRefs[0] = %+v, want {red 6}", obj.MaterialRefs[0])
	}
}

func TestParseOBJ_FaceLineNumbers(t *testing.T) {
	data := []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	obj := ParseOBJ("test.obj", data)
	if len(obj.Faces) != 1 {
		t.Fatalf("face count = %d, want 1", len(obj.Faces))
	}
	if obj.Faces[0].Line != 4 {
		t.Errorf("face line = %d, want 4", obj.Faces[0].Line)
	}
}

func TestParseOBJ_DecimalPointParsing(t *testing.T) {
	// strconv only accepts the period as a decimal separator, so the
	// result cannot depend on the process locale.
	obj := ParseOBJ("test.obj", []byte("v 1.5 2.5 3.5\n"))
	if len(obj.Positions) != 1 {
		t.Fatalf("position count = %d, want 1", len(obj.Positions))
	}
	if obj.Positions[0] != [3]float32{1.5, 2.5, 3.5} {
		t.Errorf("Positions[0] = %v, want [1.5 2.5 3.5]", obj.Positions[0])
	}

	// A comma-decimal line must be rejected, not misparsed.
	obj = ParseOBJ("test.obj", []byte("v 1,5 2,5 3,5\n"))
	if len(obj.Positions) != 0 || len(obj.Warnings) != 1 {
		t.Errorf("comma decimals: positions = %d, warnings = %d", len(obj.Positions), len(obj.Warnings))
	}
}

func TestParseOBJFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	content := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	obj, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if len(obj.Faces) != 1 {
		t.Errorf("face count = %d, want 1", len(obj.Faces))
	}
	if obj.Name != path {
		t.Errorf("Name = %q, want %q", obj.Name, path)
	}

	if _, err := ParseOBJFile(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestParseOBJ_ContinuesAfterErrors(t *testing.T) {
	data := []byte(strings.Join([]string{
		"v 0 0 0",
		"v broken",
		"v 1 0 0",
		"v 0 1 0",
		"f 1 2 3 4",
		"f 1 2 3",
	}, "\n"))

	obj := ParseOBJ("test.obj", data)

	if len(obj.Positions) != 3 {
		t.Errorf("position count = %d, want 3", len(obj.Positions))
	}
	if len(obj.Faces) != 1 {
		t.Errorf("face count = %d, want 1", len(obj.Faces))
	}
	if len(obj.Warnings) != 2 {
		t.Errorf("warning count = %d, want 2 (%v)", len(obj.Warnings), obj.Warnings)
	}
}
