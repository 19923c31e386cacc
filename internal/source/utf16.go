package source

import "unicode/utf16"

func utf16Decode(units []uint16) string {
	return string(utf16.Decode(units))
}
