package model

import (
	"reflect"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestTriangleList(t *testing.T) {
	tests := []struct {
		name   string
		mode   gltf.PrimitiveMode
		in     []uint32
		want   []uint32
		wantOK bool
	}{
		{"list trims partial", gltf.PrimitiveTriangles, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2}, true},
		{"strip", gltf.PrimitiveTriangleStrip, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2, 2, 1, 3}, true},
		{"strip degenerate", gltf.PrimitiveTriangleStrip, []uint32{0, 1, 1, 2}, []uint32{}, true},
		{"fan", gltf.PrimitiveTriangleFan, []uint32{0, 1, 2, 3}, []uint32{0, 1, 2, 0, 2, 3}, true},
		{"short fan", gltf.PrimitiveTriangleFan, []uint32{0, 1}, nil, true},
		{"lines", gltf.PrimitiveLines, []uint32{0, 1}, nil, false},
		{"points", gltf.PrimitivePoints, []uint32{0}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := triangleList(tt.mode, tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
