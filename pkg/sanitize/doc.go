// Package sanitize repairs malformed diagram text so it always renders.
//
// # Overview
//
// Diagram text arrives from an upstream generator that routinely emits
// broken grammar: dangling arrows, unbalanced brackets, references to nodes
// that were never defined, subgraph blocks with no end. This package turns
// any input, including empty strings and plain prose, into a structurally
// well-formed document for the [diagram] grammar.
//
// The passes, applied in order by [Validate]:
//
//   - [Normalize]: line endings, duplicate headers, dangling arrows, the
//     header guarantee
//   - [Extract]: symbol tables of defined nodes, referenced nodes, and edges
//   - [Repair]: missing definitions, subgraph/end balance, classDef styles,
//     bracket balance
//   - [Validate]: two-pass orchestration producing the final document, or a
//     canonical fallback when nothing parseable exists
//
// [Synthesize] is an independent reconstruction path that ignores the
// original formatting entirely and rebuilds a fresh document from whatever
// nodes and edges survive extraction.
//
// # Guarantees
//
// Validate never fails and never returns an empty document. Repair is
// idempotent: repairing already-repaired text is a no-op. Extraction is
// deterministic: identical input always yields identical symbol tables.
//
// Two repair rules are deliberately one-sided: excess end lines and excess
// closing brackets are left alone. Deficits are fabricated because the
// grammar rejects them outright; surpluses usually pass, and inventing
// opening structure would put blocks in the document the author never wrote.
package sanitize
