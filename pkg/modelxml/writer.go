package modelxml

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrWriteFile indicates the output document could not be written.
var ErrWriteFile = errors.New("write model document")

const crlf = "\r\n"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Marshal serializes the document in the vendor's layout: a single leading
// blank line, the ModelInfo block byte-for-byte as read, then the behavior
// tree re-indented with one tab per nesting level and CRLF line endings. No
// prolog and no BOM are emitted; the loader expects neither.
func (d *Document) Marshal() []byte {
	var buf bytes.Buffer

	buf.WriteString(crlf)
	buf.WriteString(d.HeaderText)
	buf.WriteString(crlf)
	writeNode(&buf, d.Behaviors, 0)

	return buf.Bytes()
}

// WriteFile serializes the document into path.
func (d *Document) WriteFile(path string) error {
	if err := os.WriteFile(path, d.Marshal(), 0o600); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteFile, path, err)
	}

	return nil
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	indent := strings.Repeat("\t", depth)

	switch n.Kind {
	case TextNode:
		buf.WriteString(indent)
		textEscaper.WriteString(buf, n.Text) //nolint:errcheck // Buffer writes cannot fail.
		buf.WriteString(crlf)

		return

	case CommentNode:
		buf.WriteString(indent)
		buf.WriteString("<!--")
		buf.WriteString(n.Text)
		buf.WriteString("-->")
		buf.WriteString(crlf)

		return

	case ElementNode:
	}

	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Name)

	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		attrEscaper.WriteString(buf, a.Value) //nolint:errcheck // Buffer writes cannot fail.
		buf.WriteByte('"')
	}

	switch {
	case len(n.Children) == 0:
		buf.WriteString("/>")
		buf.WriteString(crlf)

	case len(n.Children) == 1 && n.Children[0].Kind == TextNode:
		buf.WriteByte('>')
		textEscaper.WriteString(buf, n.Children[0].Text) //nolint:errcheck // Buffer writes cannot fail.
		buf.WriteString("</")
		buf.WriteString(n.Name)
		buf.WriteByte('>')
		buf.WriteString(crlf)

	default:
		buf.WriteByte('>')
		buf.WriteString(crlf)

		for _, c := range n.Children {
			writeNode(buf, c, depth+1)
		}

		buf.WriteString(indent)
		buf.WriteString("</")
		buf.WriteString(n.Name)
		buf.WriteByte('>')
		buf.WriteString(crlf)
	}
}
