package base36

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{35, "z"},
		{36, "10"},
		{255, "73"},
		{1295, "zz"},
		{1651312057, "rb5cjd"},
		{math.MaxUint64, "3w5e11264sgsf"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, Encode(tc.input))
		})
	}
}

func TestAppendEncode(t *testing.T) {
	assert.Equal(t, "foo_10", string(AppendEncode([]byte("foo_"), 36)))
}

func TestEncodeCounterFitsTwoChars(t *testing.T) {
	for v := 0; v <= math.MaxUint8; v++ {
		s := Encode(uint64(v))
		require.LessOrEqual(t, len(s), 2, "Encode(%d) = %q", v, s)
	}
}
