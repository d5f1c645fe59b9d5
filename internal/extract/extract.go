// Package extract turns uploaded resume bytes into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF   = "application/pdf"
	mimeDOC   = "application/msword"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText  = "text/plain"
	mimeOctet = "application/octet-stream"
)

// ErrDecode marks any failure to turn bytes into text.
var ErrDecode = errors.New("decode failed")

// DecodeError reports which file and format could not be decoded.
type DecodeError struct {
	FileName string
	Format   string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s (%s): %v", e.FileName, e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Text extracts text from an in-memory upload. The decoder is chosen by
// file extension; files without a known extension are sniffed.
func Text(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	format := detectFormat(fileName, data)
	if len(data) == 0 {
		return "", &DecodeError{FileName: fileName, Format: format, Err: errors.New("empty file")}
	}

	var (
		text string
		err  error
	)
	switch format {
	case mimePDF:
		text, err = extractPDF(data)
	case mimeDOCX:
		text, err = extractDOCX(data)
	case mimeDOC:
		text, err = extractDOC(data)
	default:
		text = strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	if err != nil {
		return "", &DecodeError{FileName: fileName, Format: format, Err: err}
	}
	return text, nil
}

// ContentType maps a file name to the MIME type stored with the blob.
func ContentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".doc":
		return mimeDOC
	case ".docx":
		return mimeDOCX
	case ".txt", ".text", ".md":
		return mimeText
	default:
		return mimeOctet
	}
}

// Supported reports whether an upload with this name and declared type
// is accepted.
func Supported(fileName, mimeType string) bool {
	switch ContentType(fileName) {
	case mimePDF, mimeDOC, mimeDOCX, mimeText:
		return true
	}
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case mimePDF, mimeDOC, mimeDOCX, mimeText:
		return true
	}
	return false
}

func detectFormat(fileName string, data []byte) string {
	if ct := ContentType(fileName); ct != mimeOctet {
		return ct
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return mimePDF
	}
	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}
	return mimeText
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		defer doc.Close()
		return stripDocxXML(doc.Editable().GetContent()), nil
	}
	// Minimal archives without rels parts still carry word/document.xml.
	raw, zerr := readDocumentXML(data)
	if zerr != nil {
		return "", fmt.Errorf("%v; %w", err, zerr)
	}
	return stripDocxXML(raw), nil
}

func extractDOC(data []byte) (string, error) {
	text, _, err := docconv.ConvertDoc(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return text, nil
}

func readDocumentXML(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return "", errors.New("document.xml file not found")
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return mimeDOCX
		}
	}
	return ""
}
