// Package puid generates short, practically-unique identifiers in the
// style of ch_xxxx tokens.
//
// An ID is a caller-supplied prefix, an underscore, and a body built from:
//
//   - the current time in Unix milliseconds, base-36 encoded
//   - an 8-bit wrapping sequence counter, base-36 encoded
//   - the OS process identifier, base-36 encoded
//   - a run of random alphanumeric characters
//
// For example:
//
//	id, err := puid.Generate("foo")   // foo_l2ok01bl0yq2i2ElC7zWaCR8
//	id, err := puid.GenerateN("bar", 24)
//
// The counter separates IDs minted in the same millisecond by the same
// process, and the process identifier separates processes on one host.
// IDs are not cryptographically unpredictable and are not guaranteed
// unique across machines.
package puid

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/aitorfernandez/puid/internal/alphanum"
	"github.com/aitorfernandez/puid/internal/base36"
	"github.com/aitorfernandez/puid/internal/counter"
)

const (
	// Separator joins the prefix to the generated body.
	Separator = "_"

	// DefaultLength is the number of random characters appended when the
	// caller does not ask for a specific length.
	DefaultLength = 12

	// MaxPrefixLen is the longest accepted prefix.
	MaxPrefixLen = 8
)

var (
	// ErrInvalidPrefix is returned when a prefix is empty, longer than
	// MaxPrefixLen, or contains anything other than ASCII letters and digits.
	ErrInvalidPrefix = errors.New("prefix must be 1-8 ASCII alphanumeric characters")

	// ErrInvalidLength is returned for a negative random suffix length.
	ErrInvalidLength = errors.New("random length must not be negative")
)

// Sequence is the 8-bit wrapping counter that separates IDs minted in the
// same millisecond.
type Sequence = counter.Sequence

// NewSequence returns a Sequence whose first value is start.
func NewSequence(start uint8) *Sequence {
	return counter.New(start)
}

// Generator mints identifiers. A Generator is safe for concurrent use.
type Generator struct {
	seq    *counter.Sequence
	now    func() time.Time
	random func(n int) string
	pid    string
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithSequence makes the Generator draw counter values from seq, which may
// be shared with other generators.
func WithSequence(seq *Sequence) Option {
	return func(g *Generator) { g.seq = seq }
}

// WithProcessID overrides the process identifier encoded into each ID.
func WithProcessID(pid int) Option {
	return func(g *Generator) { g.pid = encodePID(pid) }
}

// WithRandom overrides the random suffix source. fn must return exactly n
// characters.
func WithRandom(fn func(n int) string) Option {
	return func(g *Generator) { g.random = fn }
}

// New returns a Generator with its own sequence counter starting at 0.
//
// New panics if the host cannot supply a process identifier.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:    time.Now,
		random: alphanum.String,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.seq == nil {
		g.seq = &counter.Sequence{}
	}
	if g.pid == "" {
		g.pid = encodePID(os.Getpid())
	}
	return g
}

func encodePID(pid int) string {
	if pid < 0 {
		panic("puid: process identifier unavailable on this platform")
	}
	return base36.Encode(uint64(pid))
}

// Generate returns a new ID for prefix with DefaultLength random characters.
func (g *Generator) Generate(prefix string) (string, error) {
	return g.GenerateN(prefix, DefaultLength)
}

// GenerateN returns a new ID for prefix with length random characters.
// A length of 0 produces an ID that ends right after the process identifier.
func (g *Generator) GenerateN(prefix string, length int) (string, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	ms := g.now().UnixMilli()
	if ms < 0 {
		ms = 0
	}
	seq := g.seq.Next()
	suffix := g.random(length)

	// 13 covers a base-36 uint64, 2 the counter.
	b := make([]byte, 0, len(prefix)+len(Separator)+13+2+len(g.pid)+len(suffix))
	b = append(b, prefix...)
	b = append(b, Separator...)
	b = base36.AppendEncode(b, uint64(ms))
	b = base36.AppendEncode(b, uint64(seq))
	b = append(b, g.pid...)
	b = append(b, suffix...)

	return string(b), nil
}

// Builder returns a Builder that generates with g.
func (g *Generator) Builder() *Builder {
	return &Builder{gen: g, length: DefaultLength}
}

// ValidatePrefix reports whether prefix is usable, returning an error
// wrapping ErrInvalidPrefix if not.
func ValidatePrefix(prefix string) error {
	if len(prefix) == 0 || len(prefix) > MaxPrefixLen || !alphanum.Contains(prefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return nil
}

var defaultGenerator = sync.OnceValue(func() *Generator { return New() })

// Default returns the process-wide Generator used by the package-level
// functions. Its sequence counter lives for the lifetime of the process.
func Default() *Generator {
	return defaultGenerator()
}

// Generate returns a new ID from the default Generator with DefaultLength
// random characters.
func Generate(prefix string) (string, error) {
	return Default().Generate(prefix)
}

// GenerateN returns a new ID from the default Generator with length random
// characters.
func GenerateN(prefix string, length int) (string, error) {
	return Default().GenerateN(prefix, length)
}

// MustGenerate is like Generate but panics if prefix is invalid.
// It simplifies initialization of IDs with constant prefixes.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic("puid: " + err.Error())
	}
	return id
}
