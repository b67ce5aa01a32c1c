package transfer

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/cperrin88/appclean/pkg/errors"
)

// Encoding labels returned by DetectEncoding.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16BE = "utf-16be"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF32LE = "utf-32le"
	// EncodingDefault is assumed when no byte-order mark is present.
	EncodingDefault = "GBK"
)

// htmlPeekSize bounds how far DetectHTMLCharset looks into a document.
const htmlPeekSize = 4096

var metaCharset = regexp.MustCompile(`(?i)<meta[^>]*charset\s*=\s*["']?([a-z0-9_/\-]+)`)

// DetectEncoding guesses a text encoding from the byte-order mark at the
// head of r. Nothing is consumed: the next read from r returns the first
// byte of the stream.
func DetectEncoding(r *bufio.Reader) string {
	head, _ := r.Peek(4)

	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return EncodingUTF32LE
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	default:
		return EncodingDefault
	}
}

// DetectHTMLCharset returns the charset declared by a <meta> tag near the
// head of r, or "" when there is none. Nothing is consumed.
func DetectHTMLCharset(r *bufio.Reader) string {
	head, _ := r.Peek(htmlPeekSize)
	m := metaCharset.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return strings.ToLower(string(m[1]))
}

// DecodeString reads r to the end and decodes it from the named encoding.
// A leading byte-order mark is dropped.
func DecodeString(r io.Reader, label string) (string, error) {
	enc, err := lookup(label)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return "", errors.Wrapf(err, "failed to decode %s text", label)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func lookup(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-32le", "utf32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), nil
	case "utf-32be", "utf32be":
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnsupported, "encoding %q", label)
	}
	return enc, nil
}
