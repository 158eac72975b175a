package testutil

// ConstantGenerator returns the same binding token every time.
//
// Unlike journal.FixedGenerator, which returns tokens in sequence and panics
// when exhausted, ConstantGenerator never runs out. Useful when a test binds
// an unknown number of managers but still needs byte-identical journals.
//
// Thread-safety: ConstantGenerator is stateless and safe for concurrent use.
type ConstantGenerator struct {
	token string
}

// NewConstantGenerator creates a constant token generator.
//
// If token is empty, Generate returns "test-binding".
func NewConstantGenerator(token string) *ConstantGenerator {
	if token == "" {
		token = "test-binding"
	}
	return &ConstantGenerator{token: token}
}

// Generate returns the constant token.
func (g *ConstantGenerator) Generate() string {
	return g.token
}
