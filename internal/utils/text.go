package utils

import (
	"fmt"
	"unicode/utf8"
)

const invalidUTF8MessageFormat = "invalid UTF-8 byte 0x%02x at offset %d"

// DecodeText interprets data as UTF-8 text. It returns an error naming the first
// offending byte when the data is not valid UTF-8.
func DecodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	offset := 0
	for offset < len(data) {
		decodedRune, runeWidth := utf8.DecodeRune(data[offset:])
		if decodedRune == utf8.RuneError && runeWidth == 1 {
			return "", fmt.Errorf(invalidUTF8MessageFormat, data[offset], offset)
		}
		offset += runeWidth
	}
	return "", fmt.Errorf(invalidUTF8MessageFormat, data[0], 0)
}
