package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detected charsets that have a known decoder
var decoders = map[string]xenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-6":   charmap.ISO8859_6,
	"windows-1256": charmap.Windows1256,
}

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8, falling back to Windows-1256.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	return NewUTF8ReaderWithFallback(r, charmap.Windows1256)
}

// NewUTF8ReaderWithFallback is NewUTF8Reader with an explicit last-resort encoding.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. Heuristic detection via chardet
//  4. Fallback
func NewUTF8ReaderWithFallback(r io.Reader, fallback xenc.Encoding) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, decoder), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if dec, ok := decoders[result.Charset]; ok {
			return transform.NewReader(br, dec.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, fallback.NewDecoder()), nil
}
