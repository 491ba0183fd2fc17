package test

import "encoding/base64"

// FakeJPEG is a tiny payload that sniffs as image/jpeg.
func FakeJPEG(seed byte) string {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, seed}
	return base64.StdEncoding.EncodeToString(data)
}
