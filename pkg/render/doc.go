// Package render turns sanitized diagram documents into SVG markup.
//
// The package exposes a single [Engine] interface with two implementations:
//
//   - [GraphvizEngine] parses the diagram grammar strictly, translates the
//     document to Graphviz DOT, and renders SVG through goccy/go-graphviz.
//     Any line it cannot type is a syntax rejection; the caller decides what
//     to fall back to.
//   - [Manual] is not an engine at all: it builds a fixed SVG fragment by
//     string concatenation and cannot fail. It backs the terminal fallback
//     tier.
//
// The engine is deliberately stricter than the sanitizer. The sanitizer's job
// is to coerce text toward the grammar; the engine's job is to refuse anything
// that still falls outside it, so the tiered pipeline has a real failure
// signal to act on.
package render
