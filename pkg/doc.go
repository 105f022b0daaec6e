// Package pkg provides the core libraries for mermend diagram sanitizing and
// rendering.
//
// # Overview
//
// Mermend takes Mermaid-style diagram text, which is frequently malformed
// when machine-generated, and guarantees a displayable render for any input.
// The pkg directory is organized into these areas:
//
//  1. [diagram] - The diagram text model (lines, nodes, edges, arrows)
//  2. [sanitize] - Text passes (normalize, repair, validate, synthesize, strip)
//  3. [render] - Render engines (Graphviz-backed SVG, constructed fallback)
//  4. [pipeline] - The tiered sanitize-and-render orchestration
//  5. [cache] / [history] - Markup caching and render-history storage
//
// # Architecture
//
// The typical data flow through mermend:
//
//	Raw diagram text
//	         ↓
//	    [sanitize] package (normalize + repair, or synthesize)
//	         ↓
//	    [render] package (DOT translation + Graphviz SVG)
//	         ↓
//	    [pipeline] package (tier ladder: primary → sanitized → minimal → manual)
//	         ↓
//	    SVG/DOT/JSON/text output
//
// # Quick Start
//
// Render diagram text through the tiered pipeline:
//
//	import (
//	    "context"
//	    "github.com/mermend/mermend/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, err := runner.SanitizeAndRender(context.Background(), rawText, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	svg := result.Markup // never empty
//
// # Main Packages
//
// [diagram] - Line classification, node and edge extraction, the arrow token
// table, and the Document/Graph types with JSON serialization.
//
// [sanitize] - The defensive text passes. Every pass is total (never errors)
// and idempotent on its own output.
//
// [render] - The Engine interface with a strict Graphviz implementation and
// the constructed Manual markup that cannot fail.
//
// [pipeline] - Tier orchestration, result types, the Latest guard for
// overlapping requests, and the stage inspector.
//
// [cache] - Markup caching with file, Redis, and null backends.
//
// [history] - Render-history storage with memory and MongoDB backends.
//
// [config] - TOML configuration with working defaults.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hook interfaces for metrics and tracing backends.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/sanitize/...     # Specific package
//
// [diagram]: https://pkg.go.dev/github.com/mermend/mermend/pkg/diagram
// [sanitize]: https://pkg.go.dev/github.com/mermend/mermend/pkg/sanitize
// [render]: https://pkg.go.dev/github.com/mermend/mermend/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/mermend/mermend/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mermend/mermend/pkg/cache
// [history]: https://pkg.go.dev/github.com/mermend/mermend/pkg/history
// [config]: https://pkg.go.dev/github.com/mermend/mermend/pkg/config
// [errors]: https://pkg.go.dev/github.com/mermend/mermend/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mermend/mermend/pkg/observability
package pkg
