package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// labelAliases maps common non-WHATWG labels onto names htmlindex knows.
var labelAliases = map[string]string{
	"utf8":   "utf-8",
	"cp949":  "euc-kr",
	"ms949":  "euc-kr",
	"uhc":    "euc-kr",
	"euckr":  "euc-kr",
	"latin1": "iso-8859-1",
	"cp1252": "windows-1252",
}

// decodeText converts raw file bytes to UTF-8. With label "auto" (or empty) a
// BOM wins, valid UTF-8 is kept, and anything else is read as CP949/EUC-KR.
// It returns the decoded bytes and the name of the encoding used.
func decodeText(b []byte, label string) ([]byte, string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "auto" {
		return autoDecode(b)
	}
	if alias, ok := labelAliases[label]; ok {
		label = alias
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	name, _ := htmlindex.Name(enc)
	if name == "utf-8" {
		b = bytes.TrimPrefix(b, utf8BOM)
		if !utf8.Valid(b) {
			return nil, "", fmt.Errorf("input is not valid utf-8")
		}
		return b, name, nil
	}
	out, err := decodeWith(enc, b)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	return out, name, nil
}

func autoDecode(b []byte) ([]byte, string, error) {
	if bytes.HasPrefix(b, utf8BOM) {
		return b[len(utf8BOM):], "utf-8", nil
	}
	if bytes.HasPrefix(b, []byte{0xFF, 0xFE}) || bytes.HasPrefix(b, []byte{0xFE, 0xFF}) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), b)
		if err != nil {
			return nil, "", fmt.Errorf("decode utf-16: %w", err)
		}
		return out, "utf-16", nil
	}
	if utf8.Valid(b) {
		return b, "utf-8", nil
	}
	out, err := decodeWith(korean.EUCKR, b)
	if err != nil {
		return nil, "", fmt.Errorf("decode cp949: %w", err)
	}
	return out, "euc-kr", nil
}

func decodeWith(enc encoding.Encoding, b []byte) ([]byte, error) {
	return enc.NewDecoder().Bytes(b)
}
