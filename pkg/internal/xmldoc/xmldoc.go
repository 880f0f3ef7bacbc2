// Package xmldoc reads XML files in the charset their declaration names and
// writes them back byte-compatible: same charset, BOM and line endings.
package xmldoc

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/arthur-debert/srcexport/pkg/errors"
	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// declEncoding finds the encoding pseudo-attribute of the XML declaration
var declEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([^"']+)["']`)

// Document is a parsed XML file plus the byte-level details etree drops
type Document struct {
	*etree.Document

	// Charset is the encoding named by the declaration; empty means UTF-8
	Charset string
	BOM     bool
	CRLF    bool
}

// Parse reads a document. Whitespace around the root element is allowed;
// text or a second element outside it is not.
func Parse(data []byte) (*Document, error) {
	d := &Document{Document: etree.NewDocument()}

	if bytes.HasPrefix(data, utf8BOM) {
		d.BOM = true
		data = data[len(utf8BOM):]
	}
	d.CRLF = bytes.Contains(data, []byte("\r\n"))

	// The whole document is transcoded up front so that etree's CDATA
	// detection, which tracks raw offsets, sees the bytes it decodes.
	if m := declEncoding.FindSubmatch(data); m != nil && !strings.EqualFold(string(m[1]), "utf-8") {
		label := string(m[1])
		enc, err := lookup(label)
		if err != nil {
			return nil, err
		}
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrXMLParse, "cannot decode %s content", label)
		}
		d.Charset = label
		data = decoded
	}

	d.ReadSettings.PreserveCData = true
	d.ReadSettings.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if d.Charset != "" && strings.EqualFold(label, d.Charset) {
			return input, nil
		}
		return nil, errors.Newf(errors.ErrXMLParse, "unsupported charset %q", label)
	}

	if err := d.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrXMLParse, "malformed XML")
	}
	if d.Root() == nil {
		return nil, errors.New(errors.ErrXMLParse, "no root element")
	}
	for _, tok := range d.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if t != d.Root() {
				return nil, errors.Newf(errors.ErrXMLParse, "unexpected element <%s> after the root", t.Tag)
			}
		case *etree.CharData:
			if !t.IsWhitespace() {
				return nil, errors.New(errors.ErrXMLParse, "text outside the root element")
			}
		}
	}
	return d, nil
}

// Bytes serializes the document in its original charset. Characters the
// charset cannot represent are written as character references.
func (d *Document) Bytes() ([]byte, error) {
	out, err := d.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot serialize XML")
	}

	if d.CRLF {
		out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}

	if d.Charset != "" {
		enc, err := lookup(d.Charset)
		if err != nil {
			return nil, err
		}
		out, err = encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(out)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot encode XML as %s", d.Charset)
		}
		return out, nil
	}

	if d.BOM {
		out = append(append([]byte{}, utf8BOM...), out...)
	}
	return out, nil
}

func lookup(label string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(label))
	if err != nil || enc == nil {
		return nil, errors.Newf(errors.ErrXMLParse, "unsupported charset %q", label)
	}
	return enc, nil
}
