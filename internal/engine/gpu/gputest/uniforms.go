package gputest

import "github.com/go-gl/mathgl/mgl32"

// Call is one recorded uniform write.
type Call struct {
	Name  string
	Value any
}

// Uniforms records uniform writes. It satisfies shader.Uniforms.
type Uniforms struct {
	Calls []Call
}

func (u *Uniforms) record(name string, v any) {
	u.Calls = append(u.Calls, Call{Name: name, Value: v})
}

func (u *Uniforms) SetInt(name string, v int32) { u.record(name, v) }
func (u *Uniforms) SetFloat(name string, v float32) { u.record(name, v) }
func (u *Uniforms) SetBool(name string, v bool) { u.record(name, v) }
func (u *Uniforms) SetVec2(name string, v mgl32.Vec2) { u.record(name, v) }
func (u *Uniforms) SetVec3(name string, v mgl32.Vec3) { u.record(name, v) }
func (u *Uniforms) SetMat4(name string, m mgl32.Mat4) { u.record(name, m) }
func (u *Uniforms) SetVec3Array(name string, vs []mgl32.Vec3) { u.record(name, append([]mgl32.Vec3(nil), vs...)) }

// Last returns the most recent value written to name.
func (u *Uniforms) Last(name string) (any, bool) {
	for i := len(u.Calls) - 1; i >= 0; i-- {
		if u.Calls[i].Name == name {
			return u.Calls[i].Value, true
		}
	}
	return nil, false
}

// All returns every value written to name, oldest first.
func (u *Uniforms) All(name string) []any {
	var out []any
	for _, c := range u.Calls {
		if c.Name == name {
			out = append(out, c.Value)
		}
	}
	return out
}

// Reset forgets all recorded writes.
func (u *Uniforms) Reset() {
	u.Calls = nil
}
