package bottles

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSourceRejectsOutOfRange(t *testing.T) {
	// Bound 3 masks to two bits: 0xFF -> 3 is rejected, 0x02 -> 2 is kept.
	src := NewReaderSource(bytes.NewReader([]byte{0xFF, 0x02}))
	n, err := src.Intn(3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReaderSourceWideBound(t *testing.T) {
	src := NewReaderSource(bytes.NewReader([]byte{0xFF, 0xFF, 0x01, 0x2B}))
	n, err := src.Intn(300)
	require.NoError(t, err)
	assert.Equal(t, 299, n)
}

func TestReaderSourceBoundOneSkipsEntropy(t *testing.T) {
	src := NewReaderSource(bytes.NewReader(nil))
	n, err := src.Intn(1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReaderSourceEntropyUnavailable(t *testing.T) {
	src := NewReaderSource(bytes.NewReader(nil))
	_, err := src.Intn(5)
	assert.ErrorIs(t, err, ErrEntropyUnavailable)
}

func TestSourceRejectsNonPositiveBound(t *testing.T) {
	_, err := NewCryptoSource().Intn(0)
	assert.Error(t, err)
	_, err = NewSeededSource(1).Intn(-3)
	assert.Error(t, err)
}

func TestCryptoSourceUniform(t *testing.T) {
	const (
		n     = 6
		draws = 60000
	)
	src := NewCryptoSource()
	var counts [n]int
	for range draws {
		v, err := src.Intn(n)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, n)
		counts[v]++
	}

	want := draws / n
	for i, c := range counts {
		assert.InDelta(t, want, c, float64(want)/10, "bucket %d", i)
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a, b := NewSeededSource(99), NewSeededSource(99)
	for range 100 {
		x, _ := a.Intn(1000)
		y, _ := b.Intn(1000)
		require.Equal(t, x, y)
	}
}

// failingSource returns an error after a fixed number of draws.
type failingSource struct {
	left int
}

func (f *failingSource) Intn(n int) (int, error) {
	if f.left <= 0 {
		return 0, errors.Join(ErrEntropyUnavailable, errors.New("drained"))
	}
	f.left--
	return 0, nil
}
