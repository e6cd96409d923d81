package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Package parts read by the converter
const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

var (
	// ErrNotDocx is returned when the archive has no word/document.xml part
	ErrNotDocx = errors.New("docx: not a valid DOCX file: missing word/document.xml")

	// ErrPartNotFound is returned when a named part is absent from the archive
	ErrPartNotFound = errors.New("docx: part not found")
)

// Parser gives access to the parts of a DOCX package
type Parser struct {
	parts map[string]*zip.File

	document *Document
	styles   *Styles
}

// NewParser opens DOCX data held in memory
func NewParser(data []byte) (*Parser, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	parts := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		parts[f.Name] = f
	}
	return &Parser{parts: parts}, nil
}

// Parse verifies that the archive is a word processing package
func (p *Parser) Parse() error {
	if _, ok := p.parts[documentPart]; !ok {
		return ErrNotDocx
	}
	return nil
}

// GetDocument decodes the main document part. The result is cached.
func (p *Parser) GetDocument() (*Document, error) {
	if p.document == nil {
		doc := &Document{}
		if err := p.decodePart(documentPart, doc); err != nil {
			return nil, err
		}
		p.document = doc
	}
	return p.document, nil
}

// GetStyles decodes the styles part. A package without one yields an
// empty style table.
func (p *Parser) GetStyles() (*Styles, error) {
	if p.styles == nil {
		styles := &Styles{}
		err := p.decodePart(stylesPart, styles)
		if err != nil && !errors.Is(err, ErrPartNotFound) {
			return nil, err
		}
		p.styles = styles
	}
	return p.styles, nil
}

// ReadFile returns the raw bytes of a part
func (p *Parser) ReadFile(name string) ([]byte, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// ListFiles returns all part names in the archive, sorted
func (p *Parser) ListFiles() []string {
	names := make([]string, 0, len(p.parts))
	for name := range p.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Parser) decodePart(name string, v any) error {
	data, err := p.ReadFile(name)
	if err != nil {
		return err
	}
	if err := decodeLocal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// decodeLocal unmarshals a WordprocessingML part into v.
//
// The element structs are tagged with bare local names ("p", "tcPr",
// "shd") while real parts qualify them with whatever prefixes the
// producing application chose (w:, w14:, mc:). Each token is rewritten to
// its local name and streamed through an encoder, and the unqualified
// copy is what v is decoded from.
func decodeLocal(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if tok = localToken(tok); tok == nil {
			continue
		}
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	return xml.Unmarshal(buf.Bytes(), v)
}

// localToken returns tok with namespaces removed, or nil for tokens that
// carry no document content
func localToken(tok xml.Token) xml.Token {
	switch t := tok.(type) {
	case xml.StartElement:
		t.Name = localName(t.Name)
		attrs := t.Attr[:0:0]
		for _, a := range t.Attr {
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			a.Name = localName(a.Name)
			attrs = append(attrs, a)
		}
		t.Attr = attrs
		return t
	case xml.EndElement:
		t.Name = localName(t.Name)
		return t
	case xml.CharData:
		return t.Copy()
	default:
		return nil
	}
}

func localName(n xml.Name) xml.Name {
	local := n.Local
	if i := strings.IndexByte(local, ':'); i >= 0 {
		local = local[i+1:]
	}
	return xml.Name{Local: local}
}
