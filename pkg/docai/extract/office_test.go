package extract

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDocxText(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Invoice from ACME</w:t></w:r></w:p>
    <w:p><w:r><w:t>Contact: </w:t></w:r><w:r><w:t>a@b.com</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := extractDocxText(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Invoice from ACME\nContact: a@b.com"
	if text != want {
		t.Errorf("extractDocxText = %q, want %q", text, want)
	}
}

func TestExtractDocxTextNotAZip(t *testing.T) {
	if _, err := extractDocxText([]byte("definitely not a zip archive")); err == nil {
		t.Fatal("expected error for non-zip payload")
	}
}

func TestExtractDocxTextMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, _ := w.Create("word/styles.xml")
	f.Write([]byte("<styles/>"))
	w.Close()

	if _, err := extractDocxText(buf.Bytes()); err == nil {
		t.Fatal("expected error when word/document.xml is absent")
	}
}
