package extractor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"pdf-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	helvetica        = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"
	helveticaWinAnsi = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
)

// buildTextPDF assembles a minimal PDF with one page per content stream,
// all pages using Helvetica as /F1.
func buildTextPDF(streams ...string) []byte {
	return buildPDF([]string{helvetica}, streams...)
}

// buildPDF writes fontObjs from object 3 onward; object 3 is the page font
// /F1. Cross-reference offsets are computed so strict readers accept the file.
func buildPDF(fontObjs []string, streams ...string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	firstPage := 3 + len(fontObjs)
	objCount := firstPage - 1 + 2*len(streams)
	offsets := make([]int, objCount+1)

	kids := make([]string, len(streams))
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), len(streams))

	for i, obj := range fontObjs {
		offsets[3+i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", 3+i, obj)
	}

	for i, stream := range streams {
		pageObj, contentObj := firstPage+2*i, firstPage+1+2*i

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", pageObj, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", contentObj, streamObject(stream))
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", objCount+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return []byte(b.String())
}

func streamObject(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
}

func textStream(text string) string {
	return "BT\n/F1 12 Tf\n72 720 Td\n(" + text + ") Tj\nET"
}

func TestPDFExtractor_Extract(t *testing.T) {
	e := NewPDFExtractor()
	ctx := context.Background()

	t.Run("single page", func(t *testing.T) {
		text, err := e.Extract(ctx, buildTextPDF(textStream("Hello World")))
		require.NoError(t, err)
		assert.Equal(t, "Hello World\n", text)
	})

	t.Run("pages are joined in order", func(t *testing.T) {
		text, err := e.Extract(ctx, buildTextPDF(textStream("Page one"), textStream("Page two")))
		require.NoError(t, err)
		assert.Equal(t, "Page one\nPage two\n", text)
	})

	t.Run("page without text adds nothing", func(t *testing.T) {
		doc := buildTextPDF(textStream("First"), "0 0 100 100 re f", textStream("Third"))
		text, err := e.Extract(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "First\nThird\n", text)
	})

	t.Run("document without text", func(t *testing.T) {
		text, err := e.Extract(ctx, buildTextPDF("0 0 100 100 re f"))
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(text))
	})

	t.Run("line moves start new lines", func(t *testing.T) {
		stream := "BT\n/F1 12 Tf\n72 720 Td\n(Line one) Tj\n0 -16 Td\n(Line two) Tj\nET"
		text, err := e.Extract(ctx, buildTextPDF(stream))
		require.NoError(t, err)
		assert.Equal(t, "Line one\nLine two\n", text)
	})

	t.Run("runs placed on the same baseline stay on one line", func(t *testing.T) {
		stream := "BT\n/F1 12 Tf\n1 0 0 1 72 720 Tm\n(Bonjour) Tj\n1 0 0 1 140 720 Tm\n(le monde) Tj\nET"
		text, err := e.Extract(ctx, buildTextPDF(stream))
		require.NoError(t, err)
		assert.Equal(t, "Bonjour le monde\n", text)
	})

	t.Run("WinAnsi encoded text", func(t *testing.T) {
		stream := textStream(`l\222\351cole co\373te 5\200 \226 fin`)
		text, err := e.Extract(ctx, buildPDF([]string{helveticaWinAnsi}, stream))
		require.NoError(t, err)
		assert.Equal(t, "l’école coûte 5€ – fin\n", text)
	})

	t.Run("composite font decoded through ToUnicode", func(t *testing.T) {
		cmap := "begincmap\n" +
			"1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n" +
			"3 beginbfchar\n<002B> <0048>\n<0048> <0065>\n<0052> <0079>\nendbfchar\n" +
			"endcmap"
		fonts := []string{
			"<< /Type /Font /Subtype /Type0 /BaseFont /Arial /Encoding /Identity-H /DescendantFonts [5 0 R] /ToUnicode 4 0 R >>",
			streamObject(cmap),
			"<< /Type /Font /Subtype /CIDFontType2 /BaseFont /Arial /CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> >>",
		}
		stream := "BT\n/F1 12 Tf\n72 720 Td\n<002B00480052> Tj\nET"

		text, err := e.Extract(ctx, buildPDF(fonts, stream))
		require.NoError(t, err)
		assert.Equal(t, "Hey\n", text)
	})

	t.Run("trailing bytes after EOF are tolerated", func(t *testing.T) {
		doc := append(buildTextPDF(textStream("Hello World")), []byte(strings.Repeat("x", 300))...)
		text, err := e.Extract(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "Hello World\n", text)
	})

	t.Run("not a pdf", func(t *testing.T) {
		_, err := e.Extract(ctx, []byte("this is plain text, not a PDF"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrExtraction, domain.CodeOf(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := e.Extract(cancelled, buildTextPDF(textStream("Hello")))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPrintable(t *testing.T) {
	assert.True(t, printable("a"))
	assert.True(t, printable(" "))
	assert.False(t, printable(""))
	assert.False(t, printable("\n"))
	assert.False(t, printable("�"))
}
