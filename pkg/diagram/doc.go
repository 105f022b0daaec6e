// Package diagram defines the typed document model for the flowchart grammar
// mermend repairs and renders.
//
// A [Document] is a diagram-type header plus an ordered sequence of [Line]
// values. Each line is either structural (node definition, edge) or
// pass-through (comment, subgraph/end, classDef, raw text). The model is
// deliberately line-oriented: the upstream text generator emits the grammar
// one statement per line, and all repair passes operate on that shape.
//
// The package also provides the [Graph] serialization format used for JSON
// output and history storage, and helpers for reading diagram text from
// files or stdin.
package diagram
