// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GeometryVertexShader is the vertex shader for geometry node rendering.
//
//go:embed geometry.vert
var GeometryVertexShader string

// GeometryFragmentShader is the fragment shader for geometry node rendering.
//
//go:embed geometry.frag
var GeometryFragmentShader string
