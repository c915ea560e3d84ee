// Package pipeline implements the markup-to-HTML compilation pipeline.
//
// The stages run in order for every document:
//   - Preprocessing (line endings, HTML escaping, optional Unicode NFC)
//   - Line classification into block styles (headers, quotes, lists, rules, comments)
//   - Inline formatting (italic, bold, underline, code, links, backslash escapes)
//   - Assembly of the body with list grouping and title discovery
//   - Page template rendering and CSS injection
//
// Every stage except CSS injection is pure. Classification, inline formatting
// and assembly cannot fail on any input; malformed lines degrade to
// paragraphs. PDF rendering lives in the root markup package.
package pipeline
