package renderer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewKernel(t *testing.T) {
	for _, size := range []int{4, 16, 64, 128} {
		kernel := NewKernel(size, rand.New(rand.NewSource(int64(size))))
		if len(kernel) != size {
			t.Fatalf("len = %d, want %d", len(kernel), size)
		}
		for i, v := range kernel {
			if v.Z() < 0 || v.Z() > 1 {
				t.Errorf("size %d: sample %d z = %v outside [0,1]", size, i, v.Z())
			}
			if v.Len() > 1.0001+kernelZBias {
				t.Errorf("size %d: sample %d length %v", size, i, v.Len())
			}
		}
	}
}

func TestNewKernelShuffleIsPermutation(t *testing.T) {
	const size = 64
	ordered := kernelSamples(size, rand.New(rand.NewSource(3)))
	shuffled := NewKernel(size, rand.New(rand.NewSource(3)))

	counts := make(map[mgl32.Vec3]int, size)
	for _, v := range ordered {
		counts[v]++
	}
	for _, v := range shuffled {
		counts[v]--
	}
	for v, n := range counts {
		if n != 0 {
			t.Errorf("sample %v count off by %d", v, n)
		}
	}

	same := true
	for i := range ordered {
		if ordered[i] != shuffled[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("kernel was not shuffled")
	}
}

func TestKernelScaleGrowsWithIndex(t *testing.T) {
	// Early samples are confined near the origin.
	ordered := kernelSamples(128, rand.New(rand.NewSource(9)))
	for i := 0; i < 8; i++ {
		if l := ordered[i].Len(); l > 0.11+kernelZBias {
			t.Errorf("sample %d length %v, want <= %v", i, l, 0.11+kernelZBias)
		}
	}
}
