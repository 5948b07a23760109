package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXExtractor reads Office Open XML packages. Legacy binary .doc files that
// are not zip packages fail with an error.
type DOCXExtractor struct{}

func (p *DOCXExtractor) SupportedFormats() []string { return []string{"doc", "docx"} }

// Extract concatenates each body paragraph's text, each followed by a newline.
func (p *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening DOCX: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	text, err := documentText(raw)
	if err != nil {
		return "", fmt.Errorf("parsing DOCX XML: %w", err)
	}
	return text, nil
}

// documentText walks the body token by token so text nested in hyperlinks,
// tracked insertions, smart tags and simple fields is kept. Tabs and breaks
// are rendered as \t and \n. Paragraphs inside tables are skipped, as they
// are not body paragraphs.
func documentText(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))

	var b strings.Builder
	var para strings.Builder
	depth := 0 // nesting of w:p
	tables := 0
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !isWordML(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tables++
			case "p":
				if tables > 0 {
					continue
				}
				if depth == 0 {
					para.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if !isWordML(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tables--
			case "t":
				inText = false
			case "p":
				if tables > 0 || depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					b.WriteString(para.String())
					b.WriteString("\n")
				}
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	return b.String(), nil
}

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func isWordML(name xml.Name) bool {
	return name.Space == wordMLNamespace || name.Space == ""
}
