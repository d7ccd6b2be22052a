package engine

import "math"

// DefaultEmbeddingDimensions is the fallback vector length for models
// without a known default.
const DefaultEmbeddingDimensions = 1536

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = uint64(1) << 31
)

// modelDimensions maps embedding model names to their default vector
// lengths.
var modelDimensions = map[string]int{
	"text-embedding-ada-002":      1536,
	"text-embedding-3-small":      1536,
	"text-embedding-3-large":      3072,
	"text-similarity-ada-001":     1024,
	"text-similarity-babbage-001": 2048,
	"text-similarity-curie-001":   4096,
	"text-similarity-davinci-001": 12288,
}

// EmbeddingDimensions resolves the vector length for a request: an
// explicit override wins, then the model default table, then the
// global default.
func EmbeddingDimensions(model string, override *int) int {
	if override != nil {
		return *override
	}
	if dims, ok := modelDimensions[model]; ok {
		return dims
	}
	return DefaultEmbeddingDimensions
}

// HashSeed derives a 64-bit seed from text using the djb2
// multiplicative hash (seed 5381, x33 per byte, wrapping). The exact
// arithmetic is load-bearing: downstream vectors are asserted
// bit-for-bit against fixtures derived from this seed.
func HashSeed(text string) uint64 {
	seed := uint64(5381)
	for _, b := range []byte(text) {
		seed = seed*33 + uint64(b)
	}
	return seed
}

// EmbedText deterministically expands text into a unit vector of the
// requested length. Same text and dimensions always produce the same
// vector, across calls and across process restarts.
//
// Each component is drawn from a linear congruential generator seeded
// by the text hash, mapped into [-1, 1), and damped toward zero so
// magnitudes look like real embedding output. The finished vector is
// scaled to unit Euclidean norm.
func EmbedText(text string, dimensions int) []float64 {
	state := HashSeed(text)
	vector := make([]float64, dimensions)

	for i := 0; i < dimensions; i++ {
		state = (state*lcgMultiplier + lcgIncrement + uint64(i)) % lcgModulus

		raw := float64(state) / float64(lcgModulus)
		normalized := (raw - 0.5) * 2
		vector[i] = normalized * (0.3 + 0.7*(1-math.Abs(raw)))
	}

	normalizeVector(vector)
	return vector
}

// normalizeVector scales the vector to unit length. A zero vector is
// left untouched rather than dividing by zero.
func normalizeVector(vector []float64) {
	sum := 0.0
	for _, v := range vector {
		sum += v * v
	}

	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}

	for i := range vector {
		vector[i] /= norm
	}
}
