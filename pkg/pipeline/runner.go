package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mermend/mermend/pkg/cache"
	"github.com/mermend/mermend/pkg/observability"
	"github.com/mermend/mermend/pkg/render"
	"github.com/mermend/mermend/pkg/sanitize"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating tier logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// retain results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Engine render.Engine
}

// NewRunner creates a runner with the given cache, keyer, and engine.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If engine is nil, a GraphvizEngine is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, engine render.Engine) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = &render.GraphvizEngine{}
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Engine: engine,
	}
}

// SanitizeAndRender runs the full sanitize → tiered render flow. The error
// return covers invalid options only; once the tiers start, every input
// produces a result, with Manual as the terminal tier that cannot fail.
func (r *Runner) SanitizeAndRender(ctx context.Context, raw string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	requestID := uuid.NewString()
	start := time.Now()
	observability.Pipeline().OnRequestStart(ctx, requestID, len(raw))

	result := &Result{Title: opts.Title}
	result.Document = r.SanitizeDocument(ctx, raw, opts)
	result.Stats.SanitizeTime = time.Since(start)

	logger.Debug("sanitized input",
		"request_id", requestID,
		"input_bytes", len(raw),
		"document_bytes", len(result.Document),
		"duration", result.Stats.SanitizeTime)

	// Cached markup short-circuits the tier ladder. Only Primary successes
	// are cached, so a hit is always tier=Primary with no diagnostic.
	docHash := cache.Hash([]byte(result.Document))
	cacheKey := r.Keyer.MarkupKey(docHash, cache.MarkupKeyOpts{Engine: EngineName, Format: opts.Format})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "markup")
			result.Markup = data
			result.Tier = TierPrimary
			result.CacheInfo.MarkupHit = true
			observability.Pipeline().OnRequestComplete(ctx, requestID, string(result.Tier), time.Since(start))
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "markup")
	}

	renderStart := time.Now()
	r.attemptTiers(ctx, raw, result, logger)
	result.Stats.RenderTime = time.Since(renderStart)

	if result.Tier == TierPrimary {
		_ = r.Cache.Set(ctx, cacheKey, result.Markup, cache.TTLMarkup)
		observability.Cache().OnCacheSet(ctx, "markup", len(result.Markup))
	}

	logger.Info("rendered diagram",
		"request_id", requestID,
		"tier", result.Tier,
		"attempts", result.Stats.Attempts,
		"bytes", len(result.Markup),
		"duration", result.Stats.RenderTime)

	observability.Pipeline().OnRequestComplete(ctx, requestID, string(result.Tier), time.Since(start))
	return result, nil
}

// SanitizeDocument produces the document the Primary tier renders: the raw
// text normalized and repaired, or fully resynthesized when opts.Synthesize
// is set.
func (r *Runner) SanitizeDocument(ctx context.Context, raw string, opts Options) string {
	pass := "repair"
	if opts.Synthesize {
		pass = "synthesize"
	}

	start := time.Now()
	observability.Sanitize().OnPassStart(ctx, pass, len(raw))

	var doc string
	if opts.Synthesize {
		doc = sanitize.Synthesize(raw)
	} else {
		doc = sanitize.Repair(sanitize.Normalize(raw))
	}

	observability.Sanitize().OnPassComplete(ctx, pass, len(doc), time.Since(start))
	return doc
}

// attemptTiers walks the tier ladder and fills in markup, tier, and
// diagnostic. Manual is the floor: constructed markup, no engine call.
func (r *Runner) attemptTiers(ctx context.Context, raw string, result *Result, logger *log.Logger) {
	attempts := []struct {
		tier       Tier
		diagnostic string
		text       func() string
	}{
		{TierPrimary, "", func() string { return result.Document }},
		{TierSanitized, DiagnosticSanitized, func() string { return sanitize.StripUnsafe(raw) }},
		{TierMinimal, DiagnosticMinimal, func() string { return sanitize.RenderFailedDiagram }},
	}

	for _, a := range attempts {
		result.Stats.Attempts++
		tierStart := time.Now()
		observability.Pipeline().OnTierStart(ctx, string(a.tier))

		markup, err := r.Engine.Render(ctx, a.text())
		observability.Pipeline().OnTierComplete(ctx, string(a.tier), time.Since(tierStart), err)
		if err == nil {
			result.Markup = markup
			result.Tier = a.tier
			result.Diagnostic = a.diagnostic
			return
		}

		logger.Debug("tier failed",
			"tier", a.tier,
			"error", err,
			"duration", time.Since(tierStart))
	}

	result.Stats.Attempts++
	result.Markup = render.Manual(result.Title)
	result.Tier = TierManual
	result.Diagnostic = DiagnosticMinimal
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
