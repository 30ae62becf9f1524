package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(documentXML string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	if documentXML != "" {
		doc, _ := w.Create("word/document.xml")
		doc.Write([]byte(documentXML))
	}

	w.Close()
	return buf.Bytes()
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func body(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wordNS + `><w:body>` + inner + `</w:body></w:document>`
}

func normalise(t *testing.T, content []byte) (string, error) {
	t.Helper()
	return New().Normalise(context.Background(), &domain.Document{
		Name:    "report.docx",
		Format:  domain.FormatWordProcessor,
		Content: content,
	})
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Equal(t, domain.FormatWordProcessor, normaliser.Format())
}

func TestNormalise_Success(t *testing.T) {
	content := createTestDOCX(body(`<w:p><w:r><w:t>The secret code for the vault is 998877.</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "The secret code for the vault is 998877.", text)
}

func TestNormalise_MultipleParagraphs(t *testing.T) {
	content := createTestDOCX(body(
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t>Third paragraph</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond paragraph\nThird paragraph", text)
}

func TestNormalise_MultipleRuns(t *testing.T) {
	content := createTestDOCX(body(
		`<w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>World</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "Hello World", text)
}

func TestNormalise_TabsAndBreaks(t *testing.T) {
	content := createTestDOCX(body(
		`<w:p><w:r><w:t>Name</w:t><w:tab/><w:t>Value</w:t><w:br/><w:t>Next line</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "Name\tValue\nNext line", text)
}

func TestNormalise_IgnoresTabStops(t *testing.T) {
	content := createTestDOCX(body(
		`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>` +
			`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
			`<w:r><w:t>World</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "Hello\nWorld", text)
}

func TestNormalise_IgnoresNonTextElements(t *testing.T) {
	content := createTestDOCX(body(
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>` +
			`<w:r><w:instrText>PAGE</w:instrText></w:r><w:r><w:t>Visible</w:t></w:r></w:p>`))

	text, err := normalise(t, content)

	require.NoError(t, err)
	assert.Equal(t, "Visible", text)
}

func TestNormalise_EmptyDocument(t *testing.T) {
	text, err := normalise(t, createTestDOCX(body("")))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestNormalise_ParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"not a zip", []byte("this is not a zip file")},
		{"missing document part", createTestDOCX("")},
		{"malformed xml", createTestDOCX(body(`<w:p><w:r><w:t>unterminated`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalise(t, tt.content)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParseFailure))
		})
	}
}

func TestNormalise_NilDocument(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkNormalise(b *testing.B) {
	content := createTestDOCX(body(`<w:p><w:r><w:t>Benchmark paragraph with some text.</w:t></w:r></w:p>`))
	n := New()
	doc := &domain.Document{Name: "bench.docx", Content: content}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = n.Normalise(context.Background(), doc)
	}
}
