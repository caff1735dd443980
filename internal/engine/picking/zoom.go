package picking

import "github.com/go-gl/mathgl/mgl32"

// ZoomMatrix maps the pixel under the cursor onto a w×h pick target.
// It is applied after the projection, so the pick pass renders with
// ZoomMatrix(...).Mul4(projection). W, H is the viewport and cursorY is
// in window coordinates (top left origin).
func ZoomMatrix(viewportW, viewportH, w, h, cursorX, cursorY float32) mgl32.Mat4 {
	x := cursorX
	y := viewportH - cursorY
	sx := viewportW / w
	sy := viewportH / h
	tx := (viewportW - 2*x) / w
	ty := (viewportH - 2*y) / h
	return mgl32.Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		tx, ty, 0, 1,
	}
}
