package field

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is written for runes that survive ASCII folding but still have
// no single-byte form (e.g. 'ß' or CJK text).
const Placeholder = '?'

// FixedWidth encodes text into exactly length bytes.
//
// Accented Latin letters are folded to their base letter first ("Île" -> "Ile").
// Any rune still outside ASCII is written as Placeholder. At most length bytes
// are copied; the remainder is zero-filled.
func FixedWidth(text string, length int) []byte {
	b, _ := encodeFixed(text, length, false)
	return b
}

// FixedWidthStrict is FixedWidth without the placeholder: it returns
// *ErrUnencodable for the first rune that cannot be folded to ASCII.
func FixedWidthStrict(text string, length int) ([]byte, error) {
	return encodeFixed(text, length, true)
}

func encodeFixed(text string, length int, strict bool) ([]byte, error) {
	out := make([]byte, length)
	if length <= 0 {
		return out[:0], nil
	}

	n := 0
	for _, r := range foldASCII(text) {
		if n == length {
			break
		}
		if r >= unicode.MaxASCII+1 {
			if strict {
				return nil, &ErrUnencodable{Text: text, Rune: r}
			}
			r = Placeholder
		}
		out[n] = byte(r)
		n++
	}

	return out, nil
}

// foldASCII strips combining marks after canonical decomposition.
// A transform chain carries state, so one is built per call.
func foldASCII(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// TrimFixed returns the text held in a fixed-width field, dropping the zero fill.
func TrimFixed(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
