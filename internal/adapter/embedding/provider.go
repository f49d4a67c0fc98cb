package embedding

import "context"

// Provider is a pluggable embedding backend. Providers are tried in
// registration order; a failing provider is skipped, never fatal.
type Provider interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}
