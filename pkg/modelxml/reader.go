package modelxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMalformedDocument indicates a source file without the expected
	// ModelInfo/ModelBehaviors top-level elements. One malformed model almost
	// certainly means a vendor format change, so callers abort the whole run.
	ErrMalformedDocument = errors.New("malformed model document")

	// ErrReadFile indicates the source file could not be read.
	ErrReadFile = errors.New("read model document")
)

const (
	headerElement = "ModelInfo"
	bodyElement   = "ModelBehaviors"
)

// Document is one parsed interior behavior file. HeaderText holds the
// ModelInfo block exactly as it appeared in the source; Behaviors is the
// mutable ModelBehaviors tree.
type Document struct {
	HeaderText string
	Behaviors  *Node
}

// ReadFile parses the interior behavior file at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadFile, path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return doc, nil
}

// Parse splits a two-root interior document into its verbatim ModelInfo text
// and a ModelBehaviors tree. The decoder runs on raw tokens, so it tolerates
// multiple top-level elements; token offsets into data recover the header
// bytes without re-serializing them.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	headerText, err := captureElement(dec, data, headerElement)
	if err != nil {
		return nil, err
	}

	start, err := advanceTo(dec, bodyElement)
	if err != nil {
		return nil, err
	}

	body, err := parseElement(dec, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	return &Document{HeaderText: headerText, Behaviors: body}, nil
}

// advanceTo consumes tokens until a top-level start element with the given
// name appears.
func advanceTo(dec *xml.Decoder, name string) (xml.StartElement, error) {
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, fmt.Errorf("%w: missing element %q", ErrMalformedDocument, name)
		}

		if err != nil {
			return xml.StartElement{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if rawName(start.Name) != name {
			// Unexpected sibling element. Skip its whole subtree so a vendor
			// extension ahead of the known blocks does not derail parsing.
			if err := skipElement(dec); err != nil {
				return xml.StartElement{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}

			continue
		}

		return start, nil
	}
}

// captureElement advances to the named top-level element and returns its
// outer markup as an exact byte slice of the source. The offset recorded
// before each RawToken call is the position of the token's first byte, so the
// slice spans '<' through the closing tag inclusive.
func captureElement(dec *xml.Decoder, data []byte, name string) (string, error) {
	for {
		off := dec.InputOffset()

		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: missing element %q", ErrMalformedDocument, name)
		}

		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if rawName(start.Name) != name {
			if err := skipElement(dec); err != nil {
				return "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
			}

			continue
		}

		if err := skipElement(dec); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		return string(data[off:dec.InputOffset()]), nil
	}
}

// skipElement consumes tokens through the end element matching the start
// element just read.
func skipElement(dec *xml.Decoder) error {
	depth := 1

	for depth > 0 {
		tok, err := dec.RawToken()
		if err != nil {
			return fmt.Errorf("unterminated element: %w", err)
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return nil
}

// parseElement builds the subtree for a start element already consumed from
// the decoder. Inter-element whitespace is dropped; the writer re-indents on
// output. Comments survive as comment nodes.
func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := NewElement(rawName(start.Name))
	for _, a := range start.Attr {
		n.Attrs = append(n.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
	}

	for {
		tok, err := dec.RawToken()
		if err != nil {
			return nil, fmt.Errorf("unterminated element %q: %w", n.Name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}

			n.AppendChild(child)

		case xml.EndElement:
			return n, nil

		case xml.CharData:
			if text := strings.TrimSpace(string(t)); text != "" {
				n.AppendChild(NewText(text))
			}

		case xml.Comment:
			n.AppendChild(&Node{Kind: CommentNode, Text: string(t)})
		}
	}
}

// rawName rejoins a prefixed name split by the raw tokenizer.
func rawName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}

	return n.Local
}
