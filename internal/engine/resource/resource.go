// Package resource implements the OBJ model resource: a lifecycle
// object that parses an OBJ file and its material libraries, assembles
// the mesh, and hands it to the host's scene-node builder.
package resource

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/model"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/pkg/formats"
)

// TextureFactory creates a host texture resource from a file path.
type TextureFactory interface {
	Create(path string) (any, error)
}

// ShaderFactory creates a host shader resource from a file path.
type ShaderFactory interface {
	Create(path string) (any, error)
}

// SceneNode is an opaque handle to a host scene-graph node.
type SceneNode interface {
	Destroy()
}

// NodeBuilder constructs a scene node from an assembled mesh.
type NodeBuilder interface {
	Build(mesh *model.Mesh) (SceneNode, error)
}

// Options carries the host collaborators for an OBJ resource. Nil
// factories leave texture/shader paths unattached; a nil NodeBuilder
// leaves the resource without a scene node.
type Options struct {
	Textures TextureFactory
	Shaders  ShaderFactory
	Nodes    NodeBuilder
	Logger   *zap.Logger
}

// OBJResource is a loadable OBJ model. Load parses the file and builds
// the scene node; Unload drops them without re-reading the file.
type OBJResource struct {
	path string
	opts Options

	loaded    bool
	mesh      *model.Mesh
	node      SceneNode
	materials formats.MaterialTable
	warnings  []formats.Warning
}

// New creates an OBJ resource for the given file path. Nothing is read
// until Load is called.
func New(path string, opts Options) *OBJResource {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &OBJResource{path: path, opts: opts}
}

// Load parses the OBJ file, loads its material libraries, assembles
// the mesh and builds the scene node. It is idempotent: a loaded
// resource returns nil without re-reading the file. The only fatal
// parse condition is an unreadable OBJ file; everything else is
// collected as warnings and logged.
func (r *OBJResource) Load() error {
	if r.loaded {
		return nil
	}

	obj, err := formats.ParseOBJFile(r.path)
	if err != nil {
		return err
	}
	warnings := obj.Warnings

	// Material libraries resolve relative to the OBJ file's directory;
	// texture and shader paths resolve relative to their MTL file.
	dir := filepath.Dir(r.path)
	table := formats.MaterialTable{}
	for _, lib := range obj.MaterialLibs {
		mtlPath := filepath.Join(dir, lib.Name)
		mtl, err := formats.ParseMTLFile(mtlPath)
		if err != nil {
			warnings = append(warnings, formats.Warning{
				File:    obj.Name,
				Line:    lib.Line,
				Message: fmt.Sprintf("cannot open material library %q", lib.Name),
			})
			continue
		}
		warnings = append(warnings, mtl.Warnings...)
		warnings = append(warnings, r.attachResources(mtl, filepath.Dir(mtlPath))...)
		table.Merge(mtl.Materials)
	}

	mesh, buildWarnings := model.Build(obj, table)
	warnings = append(warnings, buildWarnings...)

	if r.opts.Nodes != nil {
		node, err := r.opts.Nodes.Build(mesh)
		if err != nil {
			return fmt.Errorf("building scene node for %s: %w", r.path, err)
		}
		r.node = node
	}

	r.mesh = mesh
	r.materials = table
	r.warnings = warnings
	r.loaded = true

	for _, w := range warnings {
		r.opts.Logger.Warn(w.Message, zap.String("file", w.File), zap.Int("line", w.Line))
	}
	r.opts.Logger.Debug("OBJ resource loaded",
		zap.String("file", r.path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("groups", len(mesh.Groups)),
		zap.Int("warnings", len(warnings)),
	)

	return nil
}

// attachResources creates host texture and shader resources for every
// material that declared one. Factory failures leave the handle nil
// and surface as warnings; a nil factory skips attachment silently.
func (r *OBJResource) attachResources(mtl *formats.MTL, dir string) []formats.Warning {
	var warnings []formats.Warning
	for _, m := range mtl.Materials {
		if m.DiffuseMap != "" && r.opts.Textures != nil {
			tex, err := r.opts.Textures.Create(filepath.Join(dir, m.DiffuseMap))
			if err != nil {
				warnings = append(warnings, formats.Warning{
					File:    mtl.Name,
					Message: fmt.Sprintf("cannot create texture %q for material %q: %v", m.DiffuseMap, m.Name, err),
				})
			} else {
				m.Texture = tex
			}
		}
		if m.ShaderFile != "" && r.opts.Shaders != nil {
			shad, err := r.opts.Shaders.Create(filepath.Join(dir, m.ShaderFile))
			if err != nil {
				warnings = append(warnings, formats.Warning{
					File:    mtl.Name,
					Message: fmt.Sprintf("cannot create shader %q for material %q: %v", m.ShaderFile, m.Name, err),
				})
			} else {
				m.Shader = shad
			}
		}
	}
	return warnings
}

// Unload drops the mesh, destroys the scene node and releases any
// destroyable texture or shader handles attached to materials. The
// source file is not re-read; a subsequent Load parses it again.
func (r *OBJResource) Unload() {
	if r.node != nil {
		r.node.Destroy()
	}
	for _, m := range r.materials {
		if h, ok := m.Texture.(interface{ Destroy() }); ok {
			h.Destroy()
		}
		if h, ok := m.Shader.(interface{ Destroy() }); ok {
			h.Destroy()
		}
	}
	r.node = nil
	r.mesh = nil
	r.materials = nil
	r.warnings = nil
	r.loaded = false
}

// SceneNode returns the scene node built during Load, or nil before
// loading or after unloading.
func (r *OBJResource) SceneNode() SceneNode {
	return r.node
}

// Mesh returns the assembled mesh, or nil when not loaded.
func (r *OBJResource) Mesh() *model.Mesh {
	return r.mesh
}

// Materials returns the material table collected from all referenced
// libraries, or nil when not loaded.
func (r *OBJResource) Materials() formats.MaterialTable {
	return r.materials
}

// Warnings returns the diagnostics collected during the last Load.
func (r *OBJResource) Warnings() []formats.Warning {
	return r.warnings
}

// Plugin creates OBJ resources and reports the file extensions it
// handles, mirroring the host's resource plug-in registration.
type Plugin struct {
	opts Options
}

// NewPlugin creates an OBJ resource plug-in with shared collaborators.
func NewPlugin(opts Options) *Plugin {
	return &Plugin{opts: opts}
}

// Extensions returns the file extensions this plug-in handles.
func (p *Plugin) Extensions() []string {
	return []string{"obj"}
}

// CreateResource creates an unloaded resource for the given file.
func (p *Plugin) CreateResource(path string) *OBJResource {
	return New(path, p.opts)
}
