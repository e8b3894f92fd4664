// Package urlsafe packs bytes into a URL-safe 64-symbol text form and back.
// The encoding is the unpadded base64url alphabet, packed most significant
// bit first, so that encoded snapshots can travel as a query-string value
// without escaping.
package urlsafe

import (
	"errors"
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var ErrUnexpectedCharacter = errors.New("unexpected character")

var lookup = func() [256]int8 {
	var l [256]int8
	for i := range l {
		l[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		l[alphabet[i]] = int8(i)
	}
	return l
}()

// Encode emits one symbol per 6-bit group of data. A trailing partial group is
// shifted into the high bits of its symbol; there is no padding.
func Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data)*8 + 5) / 6)

	var acc uint32
	var bits uint // pending bits in acc
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 6 {
			bits -= 6
			sb.WriteByte(alphabet[(acc>>bits)&0x3f])
		}
		acc &= 1<<bits - 1
	}
	if bits > 0 {
		sb.WriteByte(alphabet[(acc<<(6-bits))&0x3f])
	}
	return sb.String()
}

// Decode reverses Encode. Bits left over after the last full byte are
// dropped. Any character outside the alphabet fails the decode.
func Decode(text string) ([]byte, error) {
	data := make([]byte, 0, len(text)*6/8)

	var acc uint32
	var bits uint
	for i := 0; i < len(text); i++ {
		v := lookup[text[i]]
		if v < 0 {
			return nil, fmt.Errorf("%w %q at offset %d", ErrUnexpectedCharacter, text[i], i)
		}
		acc = acc<<6 | uint32(v)
		bits += 6
		if bits >= 8 {
			bits -= 8
			data = append(data, byte(acc>>bits))
		}
		acc &= 1<<bits - 1
	}
	return data, nil
}
