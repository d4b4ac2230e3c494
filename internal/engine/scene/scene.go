// Package scene provides the OpenGL-backed geometry node built from
// assembled OBJ meshes, and the renderer that draws it.
package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/model"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/resource"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/scene/shaders"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/shader"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/texture"
	"github.com/OpenEngineDK/extensions-mesh-OBJResource/pkg/formats"
)

// Texture is a GPU texture created from a map_Kd image file.
type Texture struct {
	ID uint32
}

// Destroy releases the GL texture.
func (t *Texture) Destroy() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// drawGroup is one material run of the index buffer with its resolved
// GL state.
type drawGroup struct {
	material *formats.Material
	texture  uint32
	start    int32
	count    int32
}

// GeometryNode holds the GPU buffers for one assembled mesh.
type GeometryNode struct {
	vao    uint32
	vbo    uint32
	ebo    uint32
	groups []drawGroup
	bounds model.Bounds
}

// NewGeometryNode uploads the mesh to the GPU. An empty mesh yields a
// node that renders nothing.
func NewGeometryNode(mesh *model.Mesh) (*GeometryNode, error) {
	node := &GeometryNode{bounds: mesh.Bounds}
	if len(mesh.Vertices) == 0 {
		return node, nil
	}

	gl.GenVertexArrays(1, &node.vao)
	gl.BindVertexArray(node.vao)

	gl.GenBuffers(1, &node.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, node.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &node.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, node.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	for _, g := range mesh.Groups {
		dg := drawGroup{material: g.Material, start: g.StartIndex, count: g.IndexCount}
		if tex, ok := g.Material.Texture.(*Texture); ok {
			dg.texture = tex.ID
		}
		node.groups = append(node.groups, dg)
	}

	return node, nil
}

// Bounds returns the mesh bounding box captured at upload time.
func (n *GeometryNode) Bounds() model.Bounds {
	return n.bounds
}

// Destroy releases the node's GL buffers. Textures are owned by their
// materials and released by the resource layer.
func (n *GeometryNode) Destroy() {
	if n.vao != 0 {
		gl.DeleteVertexArrays(1, &n.vao)
		n.vao = 0
	}
	if n.vbo != 0 {
		gl.DeleteBuffers(1, &n.vbo)
		n.vbo = 0
	}
	if n.ebo != 0 {
		gl.DeleteBuffers(1, &n.ebo)
		n.ebo = 0
	}
}

// Renderer draws geometry nodes with per-material Blinn-Phong shading.
type Renderer struct {
	program uint32

	locMVP        int32
	locModel      int32
	locAmbient    int32
	locDiffuse    int32
	locSpecular   int32
	locShininess  int32
	locUseTexture int32
	locTexture    int32
	locLightDir   int32
	locViewPos    int32
}

// NewRenderer compiles the geometry shader program. Requires a current
// GL context.
func NewRenderer() (*Renderer, error) {
	program, err := shader.CompileProgram(shaders.GeometryVertexShader, shaders.GeometryFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("geometry shader: %w", err)
	}

	r := &Renderer{program: program}
	r.locMVP = shader.GetUniform(program, "uMVP")
	r.locModel = shader.GetUniform(program, "uModel")
	r.locAmbient = shader.GetUniform(program, "uAmbient")
	r.locDiffuse = shader.GetUniform(program, "uDiffuse")
	r.locSpecular = shader.GetUniform(program, "uSpecular")
	r.locShininess = shader.GetUniform(program, "uShininess")
	r.locUseTexture = shader.GetUniform(program, "uUseTexture")
	r.locTexture = shader.GetUniform(program, "uTexture")
	r.locLightDir = shader.GetUniform(program, "uLightDir")
	r.locViewPos = shader.GetUniform(program, "uViewPos")

	return r, nil
}

// Render draws the node group by group with its material state bound.
func (r *Renderer) Render(node *GeometryNode, viewProj, modelMatrix mgl32.Mat4, lightDir, viewPos mgl32.Vec3) {
	if node == nil || node.vao == 0 {
		return
	}

	gl.UseProgram(r.program)

	mvp := viewProj.Mul4(modelMatrix)
	gl.UniformMatrix4fv(r.locMVP, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.locModel, 1, false, &modelMatrix[0])
	gl.Uniform3f(r.locLightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform3f(r.locViewPos, viewPos[0], viewPos[1], viewPos[2])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.locTexture, 0)

	gl.BindVertexArray(node.vao)
	for _, g := range node.groups {
		m := g.material
		gl.Uniform4f(r.locAmbient, m.Ambient[0], m.Ambient[1], m.Ambient[2], m.Ambient[3])
		gl.Uniform4f(r.locDiffuse, m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Diffuse[3])
		gl.Uniform4f(r.locSpecular, m.Specular[0], m.Specular[1], m.Specular[2], m.Specular[3])
		gl.Uniform1f(r.locShininess, m.Shininess)

		if g.texture != 0 {
			gl.Uniform1i(r.locUseTexture, 1)
			gl.BindTexture(gl.TEXTURE_2D, g.texture)
		} else {
			gl.Uniform1i(r.locUseTexture, 0)
		}

		gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, uintptr(g.start*4))
	}
	gl.BindVertexArray(0)
}

// Destroy releases the shader program.
func (r *Renderer) Destroy() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Builder implements the resource layer's node and texture factories
// on top of the GL scene types. Requires a current GL context.
type Builder struct{}

// Build uploads the mesh and returns it as an opaque scene node.
func (Builder) Build(mesh *model.Mesh) (resource.SceneNode, error) {
	return NewGeometryNode(mesh)
}

// Create loads an image file (TGA, PNG or JPEG) and uploads it as a
// GL texture, implementing resource.TextureFactory.
func (Builder) Create(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err = texture.DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return uploadTexture(texture.ToRGBA(img)), nil
}

// uploadTexture creates a mipmapped GL texture from an RGBA image.
func uploadTexture(img *image.RGBA) *Texture {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return &Texture{ID: texID}
}
