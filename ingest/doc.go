// Package ingest turns resume files into positioned, normalized tokens.
//
// Supported inputs are PDF, DOCX, HTML and raster images (PNG, JPEG, TIFF,
// BMP, WebP). The format is detected from the file content and falls back
// to the extension. Every path produces a [model.Document] whose token
// boxes live in the normalized 0..BBoxScale space with a top-left origin.
//
// # PDF
//
// Glyphs are read with their positions and grouped into words on the same
// baseline. Pages without any selectable text are logged as needing OCR.
//
// # DOCX and HTML
//
// Neither format exposes absolute positions, so paragraphs (or block
// elements) are laid out on a synthetic letter-size page: one line per
// paragraph, equal-width word slots. Each token records its paragraph
// index in the "line" metadata key.
//
// # Images
//
// Images are recognized with the ocr package, which needs the "ocr" build
// tag. Word boxes are normalized to the image size and carry the OCR
// confidence in the "confidence" metadata key.
//
// # Basic Usage
//
//	doc, err := ingest.New(ingest.DefaultConfig(), logger).Ingest(ctx, "resume.pdf")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.TokenCount())
package ingest
