package transfer

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cperrin88/appclean/pkg/errors"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{name: "utf-8 bom", input: []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, expected: EncodingUTF8},
		{name: "utf-16be bom", input: []byte{0xFE, 0xFF, 0x00, 'h'}, expected: EncodingUTF16BE},
		{name: "utf-32le bom", input: []byte{0xFF, 0xFE, 0x00, 0x00, 'h', 0, 0, 0}, expected: EncodingUTF32LE},
		{name: "utf-16le bom", input: []byte{0xFF, 0xFE, 'h', 0x00}, expected: EncodingUTF16LE},
		{name: "utf-16le bom only", input: []byte{0xFF, 0xFE}, expected: EncodingUTF16LE},
		{name: "plain ascii", input: []byte("hello"), expected: EncodingDefault},
		{name: "empty", input: nil, expected: EncodingDefault},
		{name: "one byte", input: []byte{0xEF}, expected: EncodingDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(bytes.NewReader(tt.input))

			assert.Equal(t, tt.expected, DetectEncoding(r))

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, len(tt.input), len(rest), "detection must not consume input")
			if len(tt.input) > 0 {
				assert.Equal(t, tt.input, rest)
			}
		})
	}
}

func TestDetectHTMLCharset(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{name: "html5", html: `<html><head><meta charset="utf-8"></head>`, expected: "utf-8"},
		{name: "http-equiv", html: `<META http-equiv="Content-Type" content="text/html; charset=GB2312">`, expected: "gb2312"},
		{name: "single quotes", html: `<meta charset='Shift_JIS'>`, expected: "shift_jis"},
		{name: "absent", html: `<html><head><title>x</title></head></html>`, expected: ""},
		{name: "beyond peek window", html: strings.Repeat(" ", 5000) + `<meta charset="utf-8">`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.html))

			assert.Equal(t, tt.expected, DetectHTMLCharset(r))

			rest, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.html, string(rest))
		})
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		label    string
		expected string
	}{
		{name: "gbk", input: []byte{0xC4, 0xE3, 0xBA, 0xC3}, label: EncodingDefault, expected: "你好"},
		{name: "utf-8 with bom", input: []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}, label: EncodingUTF8, expected: "ok"},
		{name: "utf-16le with bom", input: []byte{0xFF, 0xFE, 'A', 0x00, 'B', 0x00}, label: EncodingUTF16LE, expected: "AB"},
		{name: "utf-16be", input: []byte{0xFE, 0xFF, 0x00, 'A'}, label: EncodingUTF16BE, expected: "A"},
		{name: "utf-32le", input: []byte{0xFF, 0xFE, 0x00, 0x00, 'Z', 0, 0, 0}, label: EncodingUTF32LE, expected: "Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(bytes.NewReader(tt.input), tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeString_DetectedLabel(t *testing.T) {
	input := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	r := bufio.NewReader(bytes.NewReader(input))

	got, err := DecodeString(r, DetectEncoding(r))
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestDecodeString_UnknownLabel(t *testing.T) {
	_, err := DecodeString(strings.NewReader("x"), "klingon-8")
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}
