// Package layout provides layout heuristics over normalized resume tokens.
//
// This package groups tokens into text lines, assigns tokens to columns on
// multi-column resumes, derives reading order, and strips repeated page
// headers and footers.
//
// # Line Grouping
//
// The [LineGrouper] clusters tokens into lines. Ingestion paths that know
// the line structure (DOCX, HTML) record it in the token's "line" metadata;
// otherwise the line index is the token's top coordinate divided by a fixed
// bucket size:
//
//	lines := layout.GroupLines(tokens)
//	for _, line := range lines {
//	    fmt.Println(line.Index, line.Text())
//	}
//
// # Columns and Reading Order
//
// The [ColumnAssigner] clusters token centers along the X axis and writes a
// "column_id" into each token's metadata. [ReadingOrder] and
// [ReorderDocument] then sort by page, column, top and left:
//
//	layout.NewColumnAssigner().Assign(doc)
//	layout.ReorderDocument(doc)
//
// # Header/Footer Filtering
//
// For multi-page resumes, the [HeaderFooterRemover] drops lines in the top
// and bottom bands that repeat across pages:
//
//	removed := layout.NewHeaderFooterRemover().Remove(doc)
package layout
