// Package model provides the intermediate representation for ingested
// resume documents.
//
// Every ingestion path (PDF, DOCX, HTML, OCR'd images) produces these types,
// and every downstream stage (layout, section detection, field extraction)
// consumes them.
//
// # Document Structure
//
// A [Document] is an ordered list of [Page] values plus the concatenated raw
// text and the source path:
//
//	doc := model.NewDocument("resume.pdf")
//	doc.AddPage(page)
//	for _, tok := range doc.Tokens() {
//	    fmt.Println(tok.Text, tok.BBox)
//	}
//
// # Tokens
//
// A [Token] is a positioned unit of text. Its [BBox] lives in a normalized
// 0-1000 coordinate space that is independent of the original page size.
// Token text is fixed once ingestion is done; the [Metadata] map is not, and
// later stages write line and column assignments into it.
//
// # Embeddings
//
// [TokenEmbedding] links a token to the contextual vector produced by the
// inference collaborator. The structuring core only counts them.
package model
