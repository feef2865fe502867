// Package renderer wraps the external PDF-rendering process behind a
// narrow interface so usecases never deal with subprocess plumbing.
package renderer

import "context"

type Kind string

const (
	KindStatement Kind = "statement"
	KindAgreement Kind = "agreement"
)

type Renderer interface {
	// Render produces the PDF bytes for the given template data.
	Render(ctx context.Context, kind Kind, data any) ([]byte, error)
}
