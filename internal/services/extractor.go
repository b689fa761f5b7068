package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
)

// ExtractionErrorMarker prefixes extractor output that reports a failure
// instead of document text.
const ExtractionErrorMarker = "Error"

type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, kind models.DocumentKind) (string, error)
}

type documentExtractor struct {
	logger *zap.Logger
}

func NewDocumentExtractor(log *zap.Logger) DocumentExtractor {
	return &documentExtractor{logger: logger.OrNop(log)}
}

// Extract implements DocumentExtractor.
func (e *documentExtractor) Extract(ctx context.Context, data []byte, kind models.DocumentKind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch kind {
	case models.KindPDF:
		text, err = extractPDFText(data)
	case models.KindDOCX:
		text, err = extractDOCXText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDocument, kind)
	}
	if err != nil {
		e.logger.Debug("document extraction failed", zap.String("kind", string(kind)), zap.Error(err))
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}

	e.logger.Debug("document extracted",
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(data)),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent())
}

// documentXMLText pulls the visible text out of a WordprocessingML body: the
// contents of every w:t run, with paragraphs and breaks turned into newlines.
func documentXMLText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var b strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to decode docx body: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
