// Package extract turns uploaded document bytes into plain text, routed
// by MIME type. PDF and DOCX go through the external converter service;
// RTF and HTML are stripped locally.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeRTF  = "application/rtf"
	MimeRTF2 = "text/rtf"
	MimeHTML = "text/html"
	MimeText = "text/plain"
)

// AllowedTypes maps accepted upload MIME types to their extension.
var AllowedTypes = map[string]string{
	MimePDF:  ".pdf",
	MimeDOC:  ".doc",
	MimeDOCX: ".docx",
	MimeRTF:  ".rtf",
	MimeRTF2: ".rtf",
	MimeHTML: ".html",
	MimeText: ".txt",
}

var (
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrTypeMismatch    = errors.New("file content does not match declared type")
	ErrNoConverter     = errors.New("no converter service configured")
)

// Judicial PDFs carry court letterhead and page-number footers that only
// pollute embeddings; crop margins in points (1 pt = 1/72 inch).
const (
	cropTopPt    = 46.0
	cropBottomPt = 57.0
)

type Service struct {
	logger    *slog.Logger
	converter *Converter
}

func New(converter *Converter) *Service {
	return &Service{
		logger:    slog.Default(),
		converter: converter,
	}
}

// Text extracts plain text from file bytes of the declared content type.
// The declared type is verified against the file's magic bytes first.
func (s *Service) Text(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := VerifyDeclaredType(data, contentType); err != nil {
		return "", err
	}

	switch contentType {
	case MimePDF:
		return s.pdfText(ctx, data)
	case MimeDOCX:
		if s.converter == nil {
			return "", ErrNoConverter
		}
		return s.converter.Convert(ctx, "document.docx", data)
	case MimeRTF, MimeRTF2:
		return RTFText(data), nil
	case MimeHTML:
		return HTMLText(data)
	case MimeText:
		return string(data), nil
	case MimeDOC:
		return "", fmt.Errorf("%w: legacy .doc requires prior conversion", ErrUnsupportedType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

func (s *Service) pdfText(ctx context.Context, data []byte) (string, error) {
	if s.converter == nil {
		return "", ErrNoConverter
	}

	cropped, err := CropHeaderFooter(data, cropTopPt, cropBottomPt)
	if err != nil {
		// A malformed crop box should not sink the whole extraction.
		s.logger.Warn("pdf crop failed, converting uncropped", "error", err)
		cropped = data
	}

	return s.converter.Convert(ctx, "document.pdf", cropped)
}

// MimeForExtension maps a file extension (with dot) to its accepted MIME
// type, or empty when the extension is not accepted.
func MimeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return MimePDF
	case ".doc":
		return MimeDOC
	case ".docx":
		return MimeDOCX
	case ".rtf":
		return MimeRTF
	case ".html", ".htm":
		return MimeHTML
	case ".txt":
		return MimeText
	default:
		return ""
	}
}

// Preview returns at most max characters of text, with an ellipsis when
// truncated.
func Preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
