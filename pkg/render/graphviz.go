package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mermend/mermend/pkg/diagram"
	"github.com/mermend/mermend/pkg/errors"
)

// GraphvizEngine renders diagram text by translating it to DOT and laying it
// out with Graphviz. The zero value is ready to use.
type GraphvizEngine struct{}

var _ Engine = (*GraphvizEngine)(nil)

// Render parses the text, translates it to DOT, and produces SVG markup.
// Text outside the grammar is rejected with errors.ErrCodeSyntaxRejected;
// backend failures surface as errors.ErrCodeRenderFailed.
func (e *GraphvizEngine) Render(ctx context.Context, text string) ([]byte, error) {
	dot, err := ToDOT(diagram.Parse(text))
	if err != nil {
		return nil, err
	}
	return renderSVG(ctx, dot)
}

// DOT returns the DOT translation without rendering it, for the text export
// surfaces.
func (e *GraphvizEngine) DOT(text string) (string, error) {
	return ToDOT(diagram.Parse(text))
}

func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the viewBox starts at the
// origin and width/height match it, which keeps embedding predictable.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
