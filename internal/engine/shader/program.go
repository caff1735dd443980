package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms is the write side of a bound program. Unknown names are ignored,
// matching GL's treatment of location -1.
type Uniforms interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetBool(name string, v bool)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
	SetVec3Array(name string, vs []mgl32.Vec3)
}

// Program is a linked shader program with a uniform location cache.
type Program struct {
	Name string
	ID   uint32

	locations map[string]int32
	bound     bool
}

// NewProgram compiles and links a named program.
func NewProgram(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	return &Program{Name: name, ID: id, locations: make(map[string]int32)}, nil
}

// Location returns the cached location of a uniform, -1 when inactive.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locations[name] = loc
	return loc
}

// Bind makes p the current program. The returned scope must be released
// before another program is bound.
func (p *Program) Bind() *Bound {
	if p.bound {
		panic(fmt.Sprintf("program %s bound twice", p.Name))
	}
	p.bound = true
	gl.UseProgram(p.ID)
	return &Bound{p: p}
}

// Destroy deletes the GL program.
func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Bound is the scope during which a program is current. Setting a uniform
// after Release panics.
type Bound struct {
	p *Program
}

// Release unbinds the program. Calling it twice is a no-op.
func (b *Bound) Release() {
	if b.p == nil {
		return
	}
	b.p.bound = false
	b.p = nil
	gl.UseProgram(0)
}

func (b *Bound) loc(name string) int32 {
	if b.p == nil {
		panic(fmt.Sprintf("uniform %q set on released program", name))
	}
	return b.p.Location(name)
}

// SetInt sets an int or sampler uniform. Names the linker dropped are ignored.
func (b *Bound) SetInt(name string, v int32) {
	if l := b.loc(name); l >= 0 {
		gl.Uniform1i(l, v)
	}
}

// SetFloat sets a float uniform.
func (b *Bound) SetFloat(name string, v float32) {
	if l := b.loc(name); l >= 0 {
		gl.Uniform1f(l, v)
	}
}

// SetBool sets a bool uniform as 0 or 1.
func (b *Bound) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	b.SetInt(name, i)
}

// SetVec2 sets a vec2 uniform.
func (b *Bound) SetVec2(name string, v mgl32.Vec2) {
	if l := b.loc(name); l >= 0 {
		gl.Uniform2f(l, v[0], v[1])
	}
}

// SetVec3 sets a vec3 uniform.
func (b *Bound) SetVec3(name string, v mgl32.Vec3) {
	if l := b.loc(name); l >= 0 {
		gl.Uniform3f(l, v[0], v[1], v[2])
	}
}

// SetMat4 sets a column-major mat4 uniform.
func (b *Bound) SetMat4(name string, m mgl32.Mat4) {
	if l := b.loc(name); l >= 0 {
		gl.UniformMatrix4fv(l, 1, false, &m[0])
	}
}

// SetVec3Array uploads vs to a vec3 array uniform starting at element 0.
// An empty slice leaves the uniform unchanged.
func (b *Bound) SetVec3Array(name string, vs []mgl32.Vec3) {
	if len(vs) == 0 {
		return
	}
	if l := b.loc(name + "[0]"); l >= 0 {
		gl.Uniform3fv(l, int32(len(vs)), &vs[0][0])
	}
}

var _ Uniforms = (*Bound)(nil)
