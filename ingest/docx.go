package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/resumeparser/model"
)

// WordprocessingML main namespace
const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// readDOCX lays the document's paragraphs out on a synthetic page.
func (in *Ingester) readDOCX(ctx context.Context, name string, data []byte) (*model.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	body, err := zipFileContent(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paragraphs, err := docxParagraphs(body)
	if err != nil {
		return nil, err
	}
	lines := splitLines(paragraphs)
	in.logger.Debug("ingest.docx.paragraphs", "file", name, "paragraphs", len(paragraphs), "lines", len(lines))

	doc := model.NewDocument(name)
	doc.AddPage(syntheticPage(lines, in.config.BBoxScale))
	return doc, nil
}

// zipFileContent reads the content of a file from the ZIP archive.
func zipFileContent(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("missing required file: %s", name)
}

// docxParagraphs streams document.xml and returns the text of every
// top-level paragraph in document order, table cells included. Tabs become
// "\t" and line breaks "\n". Fallback copies of alternate content are
// skipped so their text is not doubled.
func docxParagraphs(data []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		paragraphs []string
		cur        strings.Builder
		depth      int // paragraph nesting (text boxes nest paragraphs)
		skip       int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skip > 0 {
				skip++
				continue
			}
			if t.Name.Local == "Fallback" {
				skip = 1
				continue
			}
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					cur.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				cur.WriteByte('\t')
			case "br", "cr":
				cur.WriteByte('\n')
			}

		case xml.EndElement:
			if skip > 0 {
				skip--
				continue
			}
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "p":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, cur.String())
				}
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText && depth > 0 {
				cur.Write(t)
			}
		}
	}

	return paragraphs, nil
}
