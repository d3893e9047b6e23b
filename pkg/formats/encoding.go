package formats

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// nameToUTF8 joins the fields of a material, object or group name and
// returns it as UTF-8. File paths are not passed through here: their bytes
// must match the names on disk.
func nameToUTF8(fields []string) string {
	return lineToUTF8([]byte(strings.Join(fields, " ")))
}

// lineToUTF8 returns line as a UTF-8 string. Exporters on Windows often write
// names in the ANSI code page, so invalid UTF-8 is decoded as Windows-1252.
// The bytes are returned as-is if that fails.
func lineToUTF8(line []byte) string {
	if utf8.Valid(line) {
		return string(line)
	}
	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), line)
	if err != nil {
		return string(line)
	}
	return string(result)
}
