package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// NewDecodingReader returns a reader that yields r's content as UTF-8.
// A leading byte order mark is dropped.
func NewDecodingReader(r io.Reader, charset string) (io.Reader, error) {
	name, ok := config.NormalizeCharset(charset)
	if !ok {
		return nil, fmt.Errorf("charset %q (want one of %s): %w",
			charset, strings.Join(config.Charsets, ", "), errors.ErrInvalidConfig)
	}

	var enc encoding.Encoding
	switch name {
	case config.CharsetLatin1:
		enc = charmap.ISO8859_1
	case config.CharsetWindows1252:
		enc = charmap.Windows1252
	case config.CharsetShiftJIS:
		enc = japanese.ShiftJIS
	}
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM)) //nolint:errcheck // peeked bytes are buffered
	}
	return br, nil
}
