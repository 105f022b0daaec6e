package render

import "context"

// Engine renders diagram text to SVG markup.
//
// Render returns errors.ErrCodeSyntaxRejected when the text falls outside the
// diagram grammar, and errors.ErrCodeRenderFailed when the text parsed but the
// backend could not produce markup.
type Engine interface {
	Render(ctx context.Context, text string) ([]byte, error)
}
