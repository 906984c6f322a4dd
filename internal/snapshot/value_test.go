package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/regparser"

	"asepscan/internal/asep"
)

func TestConvertValueDataStrings(t *testing.T) {
	got := convertValueData(&regparser.ValueData{
		Type:   regparser.REG_SZ,
		String: "C:\\Windows\\system32\\spoolsv.exe\x00",
	})
	assert.Equal(t, asep.TextValue(`C:\Windows\system32\spoolsv.exe`), got)

	got = convertValueData(&regparser.ValueData{
		Type:   regparser.REG_EXPAND_SZ,
		String: `%SystemRoot%\System32\svchost.exe -k netsvcs`,
	})
	assert.Equal(t, asep.ValueText, got.Kind)
	assert.Equal(t, `%SystemRoot%\System32\svchost.exe -k netsvcs`, got.Text)
}

func TestConvertValueDataMultiSz(t *testing.T) {
	got := convertValueData(&regparser.ValueData{
		Type:   regparser.REG_MULTI_SZ,
		String: "LanmanWorkstation\x00LanmanServer\x00\x00",
	})
	assert.Equal(t, asep.ValueTextList, got.Kind)
	assert.Equal(t, []string{"LanmanWorkstation", "LanmanServer"}, got.List)

	got = convertValueData(&regparser.ValueData{
		Type:   regparser.REG_MULTI_SZ,
		String: "\x00",
	})
	assert.Empty(t, got.List)
}

func TestConvertValueDataNumbers(t *testing.T) {
	got := convertValueData(&regparser.ValueData{
		Type:   regparser.REG_DWORD,
		Uint64: 2,
	})
	assert.Equal(t, asep.TextValue("2"), got)

	got = convertValueData(&regparser.ValueData{
		Type:   regparser.REG_QWORD,
		Uint64: 1 << 40,
	})
	assert.Equal(t, asep.TextValue("1099511627776"), got)
}

func TestConvertValueDataBinary(t *testing.T) {
	blob := []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	got := convertValueData(&regparser.ValueData{
		Type: regparser.REG_BINARY,
		Data: blob,
	})
	assert.Equal(t, asep.ValueBinary, got.Kind)
	assert.Equal(t, blob, got.Raw)
}

func TestConvertValueDataBinaryUTF16(t *testing.T) {
	// REG_BINARY carrying UTF-16LE text is decoded rather than hex-dumped.
	got := convertValueData(&regparser.ValueData{
		Type: regparser.REG_BINARY,
		Data: []byte{'c', 0, ':', 0, '\\', 0, 'x', 0, 0, 0},
	})
	assert.Equal(t, asep.TextValue(`c:\x`), got)
}

func TestDecodeUTF16Text(t *testing.T) {
	s, ok := decodeUTF16Text([]byte{'a', 0, 'b', 0})
	assert.True(t, ok)
	assert.Equal(t, "ab", s)

	_, ok = decodeUTF16Text(nil)
	assert.False(t, ok)

	_, ok = decodeUTF16Text([]byte{'a', 0, 'b'})
	assert.False(t, ok, "odd length")

	_, ok = decodeUTF16Text([]byte{0x01, 0x00, 0x02, 0x00})
	assert.False(t, ok, "control characters are not text")

	_, ok = decodeUTF16Text([]byte{0, 0})
	assert.False(t, ok, "all NULs")
}
