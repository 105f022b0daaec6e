package cli

import (
	"github.com/spf13/cobra"

	"github.com/mermend/mermend/pkg/diagram"
	"github.com/mermend/mermend/pkg/pipeline"
	"github.com/mermend/mermend/pkg/render"
	"github.com/mermend/mermend/pkg/sanitize"
)

// newRenderCmd creates the render command.
func newRenderCmd(cfgPath *string) *cobra.Command {
	var (
		output     string
		format     string
		title      string
		synthesize bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Sanitize diagram text and render it",
		Long: `Sanitize diagram text and render it to the selected format.

The input file may be "-" to read from stdin. Rendering never fails: if the
sanitized text is rejected by the engine, the pipeline falls back through
progressively simpler representations until one renders.

Formats:
  svg   rendered markup via the tiered pipeline (default)
  dot   the sanitized document translated to Graphviz DOT
  json  the validated document as a node/edge graph
  text  the validated document text`,
		Example: `  # Render a diagram to stdout
  mermend render diagram.mmd

  # Render from stdin to a file
  cat diagram.mmd | mermend render - -o out.svg

  # Rebuild the document from extracted structure first
  mermend render diagram.mmd --synthesize

  # Export the sanitized structure as JSON
  mermend render diagram.mmd -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Render.Format
			}

			raw, err := diagram.ReadSource(args[0])
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Title:      title,
				Format:     format,
				Synthesize: synthesize,
				Refresh:    refresh,
				Logger:     logger,
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := newRunner(ctx, cfg, logger, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			switch opts.Format {
			case pipeline.FormatSVG:
				return renderSVG(cmd, runner, raw, opts, output)
			case pipeline.FormatDOT:
				doc := runner.SanitizeDocument(ctx, raw, opts)
				engine := &render.GraphvizEngine{}
				dot, err := engine.DOT(doc)
				if err != nil {
					return err
				}
				return diagram.WriteOutput(output, []byte(dot))
			case pipeline.FormatJSON:
				d := diagram.Parse(sanitize.Validate(raw))
				return diagram.ExportJSON(diagram.FromDocument(&d), output)
			default: // text
				return diagram.WriteOutput(output, []byte(sanitize.Validate(raw)+"\n"))
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: svg, dot, json, text")
	cmd.Flags().StringVar(&title, "title", "", "diagram title for display surfaces")
	cmd.Flags().BoolVar(&synthesize, "synthesize", false, "rebuild the document from extracted nodes and edges")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the markup cache entirely")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached markup exists")

	return cmd
}

// renderSVG runs the tiered pipeline and writes the resulting markup.
func renderSVG(cmd *cobra.Command, runner *pipeline.Runner, raw string, opts pipeline.Options, output string) error {
	ctx := cmd.Context()

	// Status output goes to stdout, so suppress it when the markup does too.
	quiet := output == ""

	var spin *Spinner
	if !quiet {
		spin = newSpinnerWithContext(ctx, "Rendering diagram...")
		spin.Start()
	}

	result, err := runner.SanitizeAndRender(ctx, raw, opts)
	if err != nil {
		if spin != nil {
			spin.StopWithError("Render failed")
		}
		return err
	}
	if spin != nil {
		spin.Stop()
	}

	if err := diagram.WriteOutput(output, result.Markup); err != nil {
		return err
	}

	if quiet {
		return nil
	}

	if result.Degraded() {
		printWarning("Degraded render: %s", result.Diagnostic)
	} else {
		printSuccess("Rendered diagram")
	}
	printStats(string(result.Tier), len(result.Markup), result.CacheInfo.MarkupHit)
	printFile(output)
	printNewline()
	printNextStep("Preview in browser", "mermend serve")
	return nil
}
