// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DiffuseVertexShader is the vertex shader for the lit main pass.
//
//go:embed diffuse.vert
var DiffuseVertexShader string

// DiffuseFragmentShader is the Blinn-Phong fragment shader, with optional SSAO.
//
//go:embed diffuse.frag
var DiffuseFragmentShader string

// ClickVertexShader is the vertex shader for the pick pass.
//
//go:embed click.vert
var ClickVertexShader string

// ClickFragmentShader writes the mesh ID as a color.
//
//go:embed click.frag
var ClickFragmentShader string

// DepthVertexShader is the vertex shader for the SSAO depth pre-pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the empty fragment stage of the depth pre-pass.
//
//go:embed depth.frag
var DepthFragmentShader string
