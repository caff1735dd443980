package camera

import gomath "math"

func sin(rad float32) float32 { return float32(gomath.Sin(float64(rad))) }
func cos(rad float32) float32 { return float32(gomath.Cos(float64(rad))) }
