package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/texture"
	"github.com/Faultbox/sceneview/internal/logger"
)

// ErrEmptyMesh is returned when a mesh has no vertices or no indices.
var ErrEmptyMesh = errors.New("empty mesh")

// GL implements Device on the current OpenGL context.
// It must only be used from the thread that owns the context.
type GL struct{}

// NewGL loads the OpenGL entry points for the current context and returns
// a Device backed by it. A context must be current.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)
	return &GL{}, nil
}

// CreateMesh uploads vertex and index data into a new VAO.
func (GL) CreateMesh(desc MeshDesc) (MeshBuffers, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return MeshBuffers{}, ErrEmptyMesh
	}
	if desc.Stride <= 0 {
		return MeshBuffers{}, fmt.Errorf("invalid vertex stride %d", desc.Stride)
	}

	var b MeshBuffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, unsafe.Pointer(&desc.Vertices[0]), gl.STATIC_DRAW)

	for _, a := range desc.Attributes {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, desc.Stride, a.Offset)
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.GenBuffers(1, &b.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, unsafe.Pointer(&desc.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	b.IndexCount = int32(len(desc.Indices))
	return b, nil
}

// DeleteMesh releases the buffers. Zero handles are ignored by GL.
func (GL) DeleteMesh(b MeshBuffers) {
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
}

// CreateTexture uploads an 8-bit image with mipmaps, trilinear filtering and repeat wrap.
func (GL) CreateTexture(img *texture.Image) (uint32, error) {
	format, err := pixelFormat(img.Channels)
	if err != nil {
		return 0, err
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*img.Channels {
		return 0, fmt.Errorf("texture %dx%d: short pixel buffer (%d bytes)", img.Width, img.Height, len(img.Pix))
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	// Rows of 1- and 3-channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// DeleteTexture releases a texture handle.
func (GL) DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// BindTexture binds id to the given texture unit and leaves that unit active.
func (GL) BindTexture(unit int, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// DrawIndexed issues one indexed triangle-list draw.
func (GL) DrawIndexed(b MeshBuffers) {
	gl.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func pixelFormat(channels int) (uint32, error) {
	switch channels {
	case 1:
		return gl.RED, nil
	case 3:
		return gl.RGB, nil
	case 4:
		return gl.RGBA, nil
	default:
		return 0, fmt.Errorf("%d channels: %w", channels, texture.ErrUnsupportedFormat)
	}
}
