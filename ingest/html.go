package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/resumeparser/model"
)

// readHTML lays the page's block-level text out on a synthetic page.
func (in *Ingester) readHTML(ctx context.Context, name string, data []byte) (*model.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := splitLines(htmlLines(root))
	in.logger.Debug("ingest.html.lines", "file", name, "lines", len(lines))

	doc := model.NewDocument(name)
	doc.AddPage(syntheticPage(lines, in.config.BBoxScale))
	return doc, nil
}

// htmlLines walks the body and returns one string per block element.
// List items are prefixed with a bullet so downstream chunking sees them.
func htmlLines(root *html.Node) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			// Surrounding whitespace is kept as a single space so inline
			// elements do not glue words together.
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" || text[0] != n.Data[0] {
				cur.WriteByte(' ')
			}
			cur.WriteString(text)
			if text != "" && !strings.HasSuffix(n.Data, text) {
				cur.WriteByte(' ')
			}
			return
		case html.ElementNode:
			if shouldSkipElement(n.Data) {
				return
			}
			switch n.Data {
			case "br":
				flush()
				return
			case "td", "th":
				cur.WriteByte(' ')
			}
		}

		block := n.Type == html.ElementNode && isBlockElement(n.Data)
		if block {
			flush()
			if n.Data == "li" {
				cur.WriteString("• ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	if body := findElement(root, "body"); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	flush()
	return lines
}

// shouldSkipElement returns true if the element carries no resume text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "head", "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockElement reports whether the tag starts its own line.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "ul", "ol", "dl", "dt", "dd", "tr", "table",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre",
		"article", "section", "header", "footer", "address", "hr":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}
