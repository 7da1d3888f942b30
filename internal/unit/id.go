package unit

import (
	"encoding/base32"
	"time"
)

// crockfordBase32 is a sortable base32 alphabet (digits before letters).
const crockfordBase32 = "0123456789abcdefghjkmnpqrstvwxyz"

var crockfordEncoding = base32.NewEncoding(crockfordBase32).WithPadding(base32.NoPadding)

const timestampBytes = 4

// GenerateID creates a lexicographically sortable unit id: Unix seconds
// encoded in Crockford's base32 (7 chars). Works until 2106.
func GenerateID() string {
	sec := time.Now().Unix()

	buf := make([]byte, timestampBytes)
	for i := timestampBytes - 1; i >= 0; i-- {
		buf[i] = byte(sec & 0xFF)
		sec >>= 8
	}

	return crockfordEncoding.EncodeToString(buf)
}

// NextSuffix increments a collision suffix like base-26:
// "" -> "a", "a" -> "b", ..., "z" -> "za".
func NextSuffix(suffix string) string {
	if suffix == "" {
		return "a"
	}

	runes := []rune(suffix)

	for idx := len(runes) - 1; idx >= 0; idx-- {
		if runes[idx] < 'z' {
			runes[idx]++

			return string(runes)
		}

		runes[idx] = 'a'
	}

	return "z" + string(runes)
}
