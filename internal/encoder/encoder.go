package encoder

import "context"

// TextEncoder turns a batch of texts into fixed-length dense vectors.
// Implementations must return one vector per input text, all of the
// same dimensionality, in input order.
type TextEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}
