package bottles

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/bits"
	mrand "math/rand"
)

// Source produces uniform random integers.
// Implementations are not safe for concurrent use.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) (int, error)
}

// CryptoSource draws from a cryptographically secure byte stream.
type CryptoSource struct {
	r   io.Reader
	buf [8]byte
}

// NewCryptoSource returns a source backed by crypto/rand.
func NewCryptoSource() *CryptoSource {
	return &CryptoSource{r: rand.Reader}
}

// NewReaderSource returns a source that reads its entropy from r.
func NewReaderSource(r io.Reader) *CryptoSource {
	return &CryptoSource{r: r}
}

// Intn returns a uniform integer in [0, n) by rejection sampling.
// Samples are the smallest whole number of bytes covering n-1, masked to
// the covering power of two; any sample >= n is discarded and redrawn.
func (s *CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("bottles: Intn bound must be positive, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}

	width := bits.Len64(uint64(n - 1))
	size := (width + 7) / 8
	mask := uint64(1)<<width - 1

	for {
		if _, err := io.ReadFull(s.r, s.buf[:size]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
		}
		var v uint64
		for _, b := range s.buf[:size] {
			v = v<<8 | uint64(b)
		}
		v &= mask
		if v < uint64(n) {
			return int(v), nil
		}
	}
}

// SeededSource is a deterministic source for reproducible puzzles.
type SeededSource struct {
	rng *mrand.Rand
}

// NewSeededSource creates a deterministic source from seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a uniform integer in [0, n). It never fails for n > 0.
func (s *SeededSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("bottles: Intn bound must be positive, got %d", n)
	}
	if n == 1 {
		return 0, nil
	}
	return s.rng.Intn(n), nil
}

// Int63 returns a non-negative 63-bit integer, used to derive worker seeds.
func (s *SeededSource) Int63() int64 {
	return s.rng.Int63()
}
