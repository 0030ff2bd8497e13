package embedding

import "math"

// Normalize scales vec to unit L2 length in place and returns it. Indexes
// using inner-product similarity require this at both index time and query
// time; applying it on only one side silently corrupts every score.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

func NormalizeAll(vecs [][]float32) [][]float32 {
	for _, v := range vecs {
		Normalize(v)
	}
	return vecs
}
