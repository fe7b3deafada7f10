package odt

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles OpenDocument text documents.
type Extractor struct{}

// New creates a new ODT extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{"odt"}
}

// Extract opens the file as a ZIP archive, pulls the text out of
// content.xml and tokenizes it on whitespace.
func (e *Extractor) Extract(_ context.Context, path string) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, domain.ErrInvalidInput)
	}
	defer reader.Close()

	text, err := extractContentText(&reader.Reader)
	if err != nil {
		return nil, err
	}
	return strings.Fields(text), nil
}

// extractContentText extracts text from content.xml.
func extractContentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "content.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseContentXML(content), nil
	}
	return "", nil
}

// parseContentXML walks the ODF content tree and collects the character
// data of every text:p paragraph. ODT nests spans and links inside
// paragraphs, so a token walk is used instead of a fixed struct.
func parseContentXML(content []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var result strings.Builder
	depth := 0 // nesting depth inside text:p elements

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "p" && depth == 0 {
				if result.Len() > 0 {
					result.WriteString("\n")
				}
			}
			if t.Name.Local == "p" || depth > 0 {
				depth++
			}
		case xml.EndElement:
			if depth > 0 {
				depth--
			}
		case xml.CharData:
			if depth > 0 {
				result.Write(t)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
