package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{DOC, "DOC"},
		{HTML, "HTML"},
		{PNG, "PNG"},
		{WebP, "WebP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{DOCX, ".docx"},
		{DOC, ".doc"},
		{HTML, ".html"},
		{JPEG, ".jpg"},
		{TIFF, ".tiff"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsImage(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, TIFF, BMP, WebP} {
		if !f.IsImage() {
			t.Errorf("Expected %v to be an image format", f)
		}
	}
	for _, f := range []Format{PDF, DOCX, DOC, HTML, Unknown} {
		if f.IsImage() {
			t.Errorf("Expected %v not to be an image format", f)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"resume.pdf", PDF},
		{"resume.PDF", PDF},
		{"resume.docx", DOCX},
		{"resume.DOC", DOC},
		{"profile.htm", HTML},
		{"profile.html", HTML},
		{"scan.png", PNG},
		{"scan.JPEG", JPEG},
		{"scan.jpg", JPEG},
		{"scan.tif", TIFF},
		{"scan.bmp", BMP},
		{"scan.webp", WebP},
		{"/path/to/resume.pdf", PDF},
		{"resume.txt", Unknown},
		{"resume", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Detect(tt.filename); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF", []byte("%PDF-1.7\n"), PDF},
		{"ZIP needs reader", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"OLE", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, DOC},
		{"PNG", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0x00}, PNG},
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"TIFF little endian", []byte{'I', 'I', 0x2A, 0x00, 0x08}, TIFF},
		{"TIFF big endian", []byte{'M', 'M', 0x00, 0x2A, 0x00}, TIFF},
		{"WebP", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), WebP},
		{"BMP", append([]byte("BM"), make([]byte, 20)...), BMP},
		{"short BM text", []byte("BM"), Unknown},
		{"HTML doctype", []byte("  <!doctype html><html></html>"), HTML},
		{"HTML tag", []byte("<HTML><body>x</body></HTML>"), HTML},
		{"XHTML", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"></html>`), HTML},
		{"plain XML", []byte(`<?xml version="1.0"?><root/>`), Unknown},
		{"text", []byte("Jane Doe"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func buildZIP(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
		if _, err := w.Write([]byte("<x/>")); err != nil {
			t.Fatalf("Write error = %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader_DOCX(t *testing.T) {
	data := buildZIP(t, "[Content_Types].xml", "word/document.xml")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != DOCX {
		t.Errorf("DetectFromReader() = %v, want DOCX", format)
	}
}

func TestDetectFromReader_OtherZIP(t *testing.T) {
	data := buildZIP(t, "[Content_Types].xml", "xl/workbook.xml")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\n%%EOF")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")

	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}
