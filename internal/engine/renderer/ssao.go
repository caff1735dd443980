package renderer

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// kernelZBias lifts samples off the surface so flat ground does not self-occlude.
const kernelZBias = 0.05

// NewKernel builds a hemisphere sample kernel of the given size for SSAO.
// Samples point into +z, grow denser toward the origin and come out in
// random order.
func NewKernel(size int, rng *rand.Rand) []mgl32.Vec3 {
	kernel := kernelSamples(size, rng)
	rng.Shuffle(len(kernel), func(i, j int) {
		kernel[i], kernel[j] = kernel[j], kernel[i]
	})
	return kernel
}

// kernelSamples returns the samples ordered by growing scale.
func kernelSamples(size int, rng *rand.Rand) []mgl32.Vec3 {
	kernel := make([]mgl32.Vec3, size)
	for i := range kernel {
		v := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}
		if v.Len() == 0 {
			v = mgl32.Vec3{0, 0, 1}
		}
		v = v.Normalize()

		t := float32(i) / float32(size)
		scale := (0.1 + 0.9*t*t) * rng.Float32()
		v = v.Mul(scale)
		v[2] = min(v[2]+kernelZBias, 1)

		kernel[i] = v
	}
	return kernel
}
