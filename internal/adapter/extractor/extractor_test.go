package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"notes-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Cell Biology</w:t></w:r></w:p>
    <w:p><w:r><w:t>Mitochondria </w:t></w:r><w:r><w:t>make ATP.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Ribosomes build proteins.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDOCXExtractor_ParagraphPerLine(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/document.xml": documentXML})

	text, err := (&DOCXExtractor{}).Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Cell Biology\nMitochondria make ATP.\n\nRibosomes build proteins.\n", text)
}

func TestDOCXExtractor_NestedRunsTabsAndBreaks(t *testing.T) {
	const xmlBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p><w:r><w:t xml:space="preserve">See </w:t></w:r><w:hyperlink r:id="rId4"><w:r><w:t>Krebs cycle</w:t></w:r></w:hyperlink><w:r><w:t xml:space="preserve"> for details.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Term</w:t><w:tab/><w:t>Definition</w:t></w:r></w:p>
    <w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
    <w:p><w:ins w:id="1" w:author="a"><w:r><w:t>Inserted</w:t></w:r></w:ins><w:del w:id="2" w:author="a"><w:r><w:delText>Deleted</w:delText></w:r></w:del></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:p><w:fldSimple w:instr="PAGE"><w:r><w:t>7</w:t></w:r></w:fldSimple></w:p>
  </w:body>
</w:document>`
	data := buildDocx(t, map[string]string{"word/document.xml": xmlBody})

	text, err := (&DOCXExtractor{}).Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "See Krebs cycle for details.\nTerm\tDefinition\nLine one\nLine two\nInserted\n7\n", text)
}

func TestDOCXExtractor_MalformedXML(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/document.xml": "<w:document><w:body><w:p>"})

	_, err := (&DOCXExtractor{}).Extract(context.Background(), data)
	assert.ErrorContains(t, err, "parsing DOCX XML")
}

func TestDOCXExtractor_MissingDocumentXML(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": "<styles/>"})

	_, err := (&DOCXExtractor{}).Extract(context.Background(), data)
	assert.ErrorContains(t, err, "word/document.xml not found")
}

func TestTextExtractor_Dispatch(t *testing.T) {
	ex := New()
	ctx := context.Background()
	data := buildDocx(t, map[string]string{"word/document.xml": documentXML})

	for _, name := range []string{"notes.docx", "NOTES.DOCX", "old.doc"} {
		text, err := ex.Extract(ctx, name, data)
		require.NoError(t, err, name)
		assert.Contains(t, text, "Mitochondria make ATP.", name)
	}

	assert.True(t, ex.Supports("lecture.pdf"))
	assert.False(t, ex.Supports("notes.txt"))
}

func TestTextExtractor_UnsupportedYieldsEmpty(t *testing.T) {
	ex := New()
	for _, name := range []string{"notes.txt", "slides.pptx", "README", ""} {
		text, err := ex.Extract(context.Background(), name, []byte("plain words"))
		assert.NoError(t, err, name)
		assert.Empty(t, text, name)
	}
}

func TestTextExtractor_CorruptDocuments(t *testing.T) {
	ex := New()
	ctx := context.Background()

	_, err := ex.Extract(ctx, "legacy.doc", []byte{0xD0, 0xCF, 0x11, 0xE0})
	assert.Equal(t, domain.CodeExtractionFailed, domain.CodeOf(err))

	_, err = ex.Extract(ctx, "broken.pdf", []byte("not a pdf"))
	assert.Equal(t, domain.CodeExtractionFailed, domain.CodeOf(err))
}
