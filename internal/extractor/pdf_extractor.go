package extractor

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var disableConfigDir sync.Once

// PDFExtractor implements domain.TextExtractor. Page text is decoded with
// ledongthuc/pdf, which applies each font's encoding and ToUnicode map.
// Files it cannot open are rewritten by pdfcpu first.
type PDFExtractor struct {
	conf *model.Configuration
}

// NewPDFExtractor returns an extractor using a relaxed pdfcpu configuration.
// pdfcpu's on-disk configuration directory is disabled.
func NewPDFExtractor() *PDFExtractor {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	// ledongthuc/pdf reads classic xref tables most reliably.
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return &PDFExtractor{conf: conf}
}

// Extract parses the document and returns the text of its pages in order.
// Each page that yields text is followed by a newline; pages without text
// contribute nothing.
func (e *PDFExtractor) Extract(ctx context.Context, document []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("PDF reader panicked while reading document", zap.Any("panic", r))
			text, err = "", domain.NewExtractionError(fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := e.open(document)
	if err != nil {
		return "", domain.NewExtractionError(err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder
	pagesWithText := 0
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}
		content, err := pageText(page)
		if err != nil {
			logger.Get().Debug("Skipping unreadable page", zap.Int("page", pageNr), zap.Error(err))
			continue
		}
		content = strings.TrimSpace(norm.NFC.String(content))
		if content == "" {
			continue
		}
		sb.WriteString(content)
		sb.WriteByte('\n')
		pagesWithText++
	}

	logger.Get().Debug("PDF text extracted",
		zap.Int("pages", pageCount),
		zap.Int("pages_with_text", pagesWithText),
		zap.Int("chars", sb.Len()))

	return sb.String(), nil
}

func (e *PDFExtractor) open(document []byte) (*pdf.Reader, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err == nil {
		return reader, nil
	}

	logger.Get().Debug("Rewriting document with pdfcpu", zap.Error(err))
	var repaired bytes.Buffer
	if rewriteErr := api.Optimize(bytes.NewReader(document), &repaired, e.conf); rewriteErr != nil {
		return nil, fmt.Errorf("open pdf: %w (pdfcpu: %v)", err, rewriteErr)
	}
	reader, err = pdf.NewReader(bytes.NewReader(repaired.Bytes()), int64(repaired.Len()))
	if err != nil {
		return nil, fmt.Errorf("open rewritten pdf: %w", err)
	}
	return reader, nil
}

// pageText lays out the decoded glyphs of a page. A change of baseline
// starts a new line and a horizontal gap wider than a fraction of the font
// size becomes a space.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page content: %v", r)
		}
	}()

	var sb strings.Builder
	var prev *pdf.Text
	glyphs := page.Content().Text
	for i := range glyphs {
		g := &glyphs[i]
		if !printable(g.S) {
			continue
		}
		if prev != nil {
			size := prev.FontSize
			if size <= 0 {
				size = 1
			}
			switch {
			case math.Abs(g.Y-prev.Y) > size/2:
				sb.WriteByte('\n')
			case g.X-(prev.X+prev.W) > size*0.15 && !endsWithSpace(&sb) && g.S != " ":
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(g.S)
		prev = g
	}
	return sb.String(), nil
}

// printable drops the run separators and undecodable glyphs the reader emits.
func printable(s string) bool {
	for _, r := range s {
		if r == unicode.ReplacementChar || (unicode.IsControl(r) && r != '\t') {
			return false
		}
	}
	return s != ""
}

func endsWithSpace(sb *strings.Builder) bool {
	s := sb.String()
	return s != "" && (s[len(s)-1] == ' ' || s[len(s)-1] == '\n')
}

var _ domain.TextExtractor = (*PDFExtractor)(nil)
