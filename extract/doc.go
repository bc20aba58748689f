// Package extract turns the tokens of one resume section into typed entries.
//
// Each extractor consumes a section's tokens, or a text projection of them,
// and returns zero or more [schema] entries. The projections are:
//
//   - [JoinTokens]: token texts joined with single spaces, in encounter order
//   - [SectionText]: tokens grouped into lines, one line per row, with a
//     blank line wherever the vertical gap between lines is larger than a
//     paragraph break
//
// Chunked extractors (education, projects) split [SectionText] on blank
// lines and bullet glyphs. Line-based extractors (work experience,
// certifications, publications) walk [layout.LineTexts].
//
// All extractors degrade silently. A heuristic that finds nothing leaves
// the field unset; there is no separate confidence signal.
package extract
