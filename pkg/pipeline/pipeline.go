// Package pipeline provides the tiered sanitize-and-render pipeline for
// mermend.
//
// This package implements the complete sanitize → render → fall back flow
// that can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// A render request walks four tiers, strictly in order, advancing only when
// the current tier's render call fails:
//
//  1. Primary: sanitize the raw text (normalize + repair) and render it
//  2. Sanitized: strip the raw text to the grammar's character set and render
//  3. Minimal: render a fixed, known-good error diagram
//  4. Manual: construct static markup directly, bypassing the engine
//
// Manual cannot fail, so every request produces displayable markup, whatever
// the input. The tiers below Primary carry a diagnostic message describing
// what was lost.
//
// # Usage
//
// Create a Runner and render:
//
//	runner := pipeline.NewRunner(cache, nil, logger, nil)
//	result, err := runner.SanitizeAndRender(ctx, rawText, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Markup
//
// Callers that replace a displayed result as new input arrives should pair
// the Runner with a [Latest] so slow, stale runs never clobber newer ones.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mermend/mermend/pkg/errors"
)

// Tier identifies which pipeline tier produced a result.
type Tier string

// Pipeline tiers, in attempt order.
const (
	TierPrimary   Tier = "primary"
	TierSanitized Tier = "sanitized"
	TierMinimal   Tier = "minimal"
	TierManual    Tier = "manual"
)

// Diagnostic messages attached to degraded tiers.
const (
	DiagnosticSanitized = "simplified due to syntax issues"
	DiagnosticMinimal   = "failed due to syntax errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatText = "text"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
	FormatText: true,
}

// EngineName identifies the backing render engine in cache keys.
const EngineName = "graphviz"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render request.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Title names the diagram; it feeds the Manual tier and display
	// surfaces. Empty means untitled.
	Title string `json:"title,omitempty"`

	// Format selects the output representation. Only FormatSVG goes through
	// the tier ladder; the other formats export the sanitized document.
	Format string `json:"format,omitempty"`

	// Synthesize rebuilds the document from extracted nodes and edges
	// instead of repairing it in place.
	Synthesize bool `json:"synthesize,omitempty"`

	// Refresh bypasses the markup cache for this request.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if !ValidFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot, json, text)", o.Format)
	}
	if err := errors.ValidateLabel(o.Title); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one render request.
type Result struct {
	// Markup is the rendered output. Never empty.
	Markup []byte `json:"markup"`

	// Tier records which tier produced the markup.
	Tier Tier `json:"tier"`

	// Diagnostic describes what degraded, empty for Primary.
	Diagnostic string `json:"diagnostic,omitempty"`

	// Title echoes the request title for display surfaces.
	Title string `json:"title,omitempty"`

	// Document is the sanitized text the Primary tier attempted.
	Document string `json:"document,omitempty"`

	// Stats contains timing information.
	Stats Stats `json:"-"`

	// CacheInfo tracks whether the markup came from cache.
	CacheInfo CacheInfo `json:"-"`
}

// Degraded reports whether the result came from a fallback tier.
func (r *Result) Degraded() bool {
	return r.Tier != TierPrimary
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SanitizeTime time.Duration
	RenderTime   time.Duration
	Attempts     int // tiers tried, including the one that succeeded
}

// CacheInfo tracks cache hits for the request.
type CacheInfo struct {
	MarkupHit bool // Whether the markup came from cache
}
