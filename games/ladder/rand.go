package ladder

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is the randomness the simulation draws from. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewSecureSource returns a CSPRNG-backed Source.
func NewSecureSource() Source {
	return secureSource{}
}

// NewSeededSource returns a reproducible Source for replays and tests.
func NewSeededSource(seed int64) Source {
	return mrand.New(mrand.NewSource(seed))
}

type secureSource struct{}

func (secureSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

const float53 = 1 << 53

func (secureSource) Float64() float64 {
	v, err := rand.Int(rand.Reader, big.NewInt(float53))
	if err != nil {
		return 0
	}
	return float64(v.Int64()) / float53
}
