// objinfo is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/resource"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "check":
		cmdCheck(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objinfo - Wavefront OBJ model utility

Usage:
  objinfo <command> [options]

Commands:
  info <file.obj>       Show model statistics
  materials <file>      List materials of an OBJ model or a bare MTL file
  check <file.obj>      Parse the model and report diagnostics

Examples:
  objinfo info teapot.obj
  objinfo materials scene.obj
  objinfo check broken.obj`)
}

// load parses the model and its material libraries without any host
// resources attached.
func load(path string) *resource.OBJResource {
	res := resource.New(path, resource.Options{})
	if err := res.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return res
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo info <file.obj>")
		os.Exit(1)
	}

	res := load(args[0])
	mesh := res.Mesh()

	fmt.Printf("Model:     %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Faces:     %d\n", len(mesh.Indices)/3)
	fmt.Printf("Groups:    %d\n", len(mesh.Groups))
	fmt.Printf("Materials: %d\n", len(res.Materials()))
	fmt.Printf("Warnings:  %d\n", len(res.Warnings()))

	if len(mesh.Vertices) > 0 {
		c := mesh.Bounds.Center()
		s := mesh.Bounds.Size()
		fmt.Printf("Center:    [%.3f %.3f %.3f]\n", c[0], c[1], c[2])
		fmt.Printf("Size:      [%.3f %.3f %.3f]\n", s[0], s[1], s[2])
	}

	if len(mesh.Groups) > 0 {
		fmt.Println()
		fmt.Println("Triangles by material:")
		counts := make(map[string]int32)
		var names []string
		for _, g := range mesh.Groups {
			name := g.Material.Name
			if name == "" {
				name = "(default)"
			}
			if _, seen := counts[name]; !seen {
				names = append(names, name)
			}
			counts[name] += g.IndexCount / 3
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-20s %d\n", name, counts[name])
		}
	}
}

func cmdMaterials(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo materials <file.obj|file.mtl>")
		os.Exit(1)
	}

	var table formats.MaterialTable
	if strings.EqualFold(filepath.Ext(args[0]), ".mtl") {
		mtl, err := formats.ParseMTLFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		table = mtl.Materials
	} else {
		table = load(args[0]).Materials()
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := table[name]
		fmt.Printf("%s\n", m.Name)
		fmt.Printf("  ambient:   [%.2f %.2f %.2f %.2f]\n", m.Ambient[0], m.Ambient[1], m.Ambient[2], m.Ambient[3])
		fmt.Printf("  diffuse:   [%.2f %.2f %.2f %.2f]\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Diffuse[3])
		fmt.Printf("  specular:  [%.2f %.2f %.2f %.2f]\n", m.Specular[0], m.Specular[1], m.Specular[2], m.Specular[3])
		fmt.Printf("  shininess: %.2f\n", m.Shininess)
		if m.DiffuseMap != "" {
			fmt.Printf("  map_Kd:    %s\n", m.DiffuseMap)
		}
		if m.ShaderFile != "" {
			fmt.Printf("  shader:    %s\n", m.ShaderFile)
		}
	}

	if len(names) == 0 {
		fmt.Println("no materials defined")
	}
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objinfo check <file.obj>")
		os.Exit(1)
	}

	res := load(args[0])
	warnings := res.Warnings()

	for _, w := range warnings {
		fmt.Println(w.String())
	}

	if len(warnings) > 0 {
		fmt.Printf("%d warning(s)\n", len(warnings))
		os.Exit(1)
	}
	fmt.Println("ok")
}
