package puid

// Builder assembles an ID step by step.
//
//	id, err := puid.NewBuilder().Prefix("foo").Length(24).Build()
type Builder struct {
	gen    *Generator
	prefix string
	length int
}

// NewBuilder returns a Builder backed by the default Generator.
func NewBuilder() *Builder {
	return Default().Builder()
}

// Prefix sets the prefix.
func (b *Builder) Prefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// Length sets the number of random characters. It defaults to DefaultLength.
func (b *Builder) Length(n int) *Builder {
	b.length = n
	return b
}

// Build validates the accumulated settings and generates the ID.
func (b *Builder) Build() (string, error) {
	return b.gen.GenerateN(b.prefix, b.length)
}
