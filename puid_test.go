package puid

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitorfernandez/puid/internal/alphanum"
	"github.com/aitorfernandez/puid/internal/base36"
)

// fixedClock returns a clock frozen at ms Unix milliseconds.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func fixedRandom(s string) func(int) string {
	return func(n int) string { return strings.Repeat(s, n)[:n] }
}

func TestGenerateN_Composition(t *testing.T) {
	g := New(
		WithClock(fixedClock(1651312057)),
		WithProcessID(255),
		WithRandom(fixedRandom("abc")),
	)

	id, err := g.GenerateN("foo", 3)
	require.NoError(t, err)
	// time "rb5cjd", counter "0", pid "73", random "abc"
	assert.Equal(t, "foo_rb5cjd073abc", id)

	id, err = g.GenerateN("foo", 3)
	require.NoError(t, err)
	assert.Equal(t, "foo_rb5cjd173abc", id)
}

func TestGenerate_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^([A-Za-z0-9]+)_([0-9a-z]+)([0-9A-Za-z]{12})$`)

	for _, prefix := range []string{"f", "fo", "foo", "quux", "b4r", "ABCDEFGH"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			m := pattern.FindStringSubmatch(id)
			require.NotNil(t, m, "unexpected format: %s", id)
			assert.Equal(t, prefix, m[1])

			before, _, found := strings.Cut(id, Separator)
			require.True(t, found)
			assert.Equal(t, prefix, before)
			assert.Equal(t, 1, strings.Count(id, Separator))
		})
	}
}

func TestGenerateN_SuffixLength(t *testing.T) {
	g := New(WithClock(fixedClock(1000)), WithProcessID(42))
	head := "x_" + base36.Encode(1000)

	t.Run("ten", func(t *testing.T) {
		id, err := g.GenerateN("x", 10)
		require.NoError(t, err)
		body := strings.TrimPrefix(id, head)
		// counter is one character below 36, pid "16"
		require.True(t, strings.HasPrefix(body[1:], "16"), "id %s", id)
		suffix := body[3:]
		assert.Len(t, suffix, 10)
		assert.True(t, alphanum.Contains(suffix))
	})

	t.Run("zero", func(t *testing.T) {
		id, err := g.GenerateN("x", 0)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(id, base36.Encode(42)), "id %s should end with the pid", id)
		assert.Equal(t, head+"1"+"16", id)
	})
}

func TestGenerateN_CounterWraps(t *testing.T) {
	g := New(WithClock(fixedClock(0)), WithProcessID(1), WithRandom(fixedRandom("")))

	first, err := g.GenerateN("w", 0)
	require.NoError(t, err)
	assert.Equal(t, "w_001", first)

	seen := map[string]bool{first: true}
	for i := 1; i < 256; i++ {
		id, err := g.GenerateN("w", 0)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate %s before wrap", id)
		seen[id] = true
	}

	again, err := g.GenerateN("w", 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGenerateN_UniqueUnderConcurrency(t *testing.T) {
	g := New(WithClock(fixedClock(1651312057000)))

	const callers = 256
	ids := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ids[i], errs[i] = g.GenerateN("con", 0)
		}()
	}
	close(start)
	wg.Wait()

	seen := make(map[string]bool, callers)
	for i, id := range ids {
		require.NoError(t, errs[i])
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateN_NonRandomPartsAreDeterministic(t *testing.T) {
	opts := []Option{WithClock(fixedClock(1700000000000)), WithProcessID(4242)}
	a := New(append(opts, WithSequence(NewSequence(7)))...)
	b := New(append(opts, WithSequence(NewSequence(7)))...)

	idA, err := a.GenerateN("det", 16)
	require.NoError(t, err)
	idB, err := b.GenerateN("det", 16)
	require.NoError(t, err)

	require.Equal(t, len(idA), len(idB))
	cut := len(idA) - 16
	assert.Equal(t, idA[:cut], idB[:cut])
	assert.NotEqual(t, idA[cut:], idB[cut:], "random suffixes should differ")
}

func TestGenerateN_SharedSequence(t *testing.T) {
	seq := NewSequence(0)
	a := New(WithSequence(seq), WithClock(fixedClock(0)), WithProcessID(0))
	b := New(WithSequence(seq), WithClock(fixedClock(0)), WithProcessID(0))

	idA, err := a.GenerateN("s", 0)
	require.NoError(t, err)
	idB, err := b.GenerateN("s", 0)
	require.NoError(t, err)

	assert.Equal(t, "s_000", idA)
	assert.Equal(t, "s_010", idB)
}

func TestGenerateN_ClockBeforeEpoch(t *testing.T) {
	g := New(WithClock(fixedClock(-5000)), WithProcessID(0))
	id, err := g.GenerateN("old", 0)
	require.NoError(t, err)
	assert.Equal(t, "old_000", id)
}

func TestGenerateN_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		length int
		want   error
	}{
		{"empty prefix", "", 12, ErrInvalidPrefix},
		{"separator in prefix", "foo_bar", 12, ErrInvalidPrefix},
		{"trailing separator", "foo_", 12, ErrInvalidPrefix},
		{"non-alphanumeric", "b??z", 12, ErrInvalidPrefix},
		{"non-ascii", "b√§z", 12, ErrInvalidPrefix},
		{"too long", "abcdefghi", 12, ErrInvalidPrefix},
		{"negative length", "foo", -1, ErrInvalidLength},
	}

	g := New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := g.GenerateN(tc.prefix, tc.length)
			assert.Empty(t, id)
			assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
		})
	}
}

func TestGenerateN_InvalidInputDoesNotAdvanceCounter(t *testing.T) {
	seq := NewSequence(0)
	g := New(WithSequence(seq))

	_, err := g.GenerateN("", 0)
	require.Error(t, err)
	_, err = g.GenerateN("foo", -3)
	require.Error(t, err)

	assert.Equal(t, uint8(0), seq.Peek())
}

func TestValidatePrefix(t *testing.T) {
	tests := map[string]struct {
		prefix string
		valid  bool
	}{
		"1 character long":        {"f", true},
		"2 characters long":       {"fo", true},
		"3 characters long":       {"foo", true},
		"4 characters long":       {"quux", true},
		"8 characters long":       {"abcd1234", true},
		"alphanumeric":            {"b4r", true},
		"upper case":              {"FOO", true},
		"non-alphanumeric":        {"b??z", false},
		"empty":                   {"", false},
		"separator":               {"a_b", false},
		"longer than 8":           {"abcd12345", false},
		"whitespace":              {"fo o", false},
		"multi-byte alphanumeric": {"fóo", false},
	}

	for desc, tc := range tests {
		t.Run(desc, func(t *testing.T) {
			err := ValidatePrefix(tc.prefix)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPrefix)
			}
		})
	}
}

func TestMustGenerate(t *testing.T) {
	assert.True(t, strings.HasPrefix(MustGenerate("foo"), "foo_"))
	assert.Panics(t, func() { MustGenerate("") })
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestWithProcessID_NegativePanics(t *testing.T) {
	assert.Panics(t, func() { New(WithProcessID(-1)) })
}

func BenchmarkGenerate(b *testing.B) {
	for b.Loop() {
		if _, err := Generate("test"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerateParallel(b *testing.B) {
	g := New()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := g.Generate("test"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
