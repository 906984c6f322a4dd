package snapshot

import (
	"strconv"
	"strings"
	"unicode"

	textunicode "golang.org/x/text/encoding/unicode"

	"www.velocidex.com/golang/regparser"

	"asepscan/internal/asep"
)

// convertValueData maps a regparser value payload onto the scanner's tagged
// union: strings stay text, multi-strings become lists, numbers render in
// decimal, and everything else is a raw blob. Blobs that are actually
// UTF-16LE text (a common shape for string data written through legacy
// APIs) are decoded to text instead of being hex-dumped.
func convertValueData(data *regparser.ValueData) asep.ValueData {
	switch data.Type {
	case regparser.REG_SZ, regparser.REG_EXPAND_SZ, regparser.REG_LINK:
		return asep.TextValue(strings.TrimRight(data.String, "\x00"))

	case regparser.REG_MULTI_SZ:
		parts := []string{}
		for _, p := range strings.Split(data.String, "\x00") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return asep.TextListValue(parts)

	case regparser.REG_DWORD, regparser.REG_DWORD_BIG_ENDIAN, regparser.REG_QWORD:
		return asep.TextValue(strconv.FormatUint(data.Uint64, 10))

	default:
		if s, ok := decodeUTF16Text(data.Data); ok {
			return asep.TextValue(s)
		}
		return asep.BinaryValue(data.Data)
	}
}

// decodeUTF16Text attempts to interpret a blob as printable UTF-16LE text.
// Returns false for anything that does not decode cleanly end to end.
func decodeUTF16Text(b []byte) (string, bool) {
	if len(b) < 2 || len(b)%2 != 0 {
		return "", false
	}
	decoder := textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(b)
	if err != nil {
		return "", false
	}
	s := strings.TrimRight(string(decoded), "\x00")
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) && r != '\t' {
			return "", false
		}
	}
	return s, true
}
