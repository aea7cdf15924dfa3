// Package daily picks the "word of the day".
//
// Every player gets the same word for a given UTC date and language:
// the index into the language's list is HMAC-SHA256(salt, date|language)
// reduced modulo the list size, so the sequence cannot be predicted
// without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns the deterministic list index for date and language.
// It returns 0 for an empty list.
func WordIndex(date time.Time, salt, language string, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte{'|'})
	h.Write([]byte(language))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(listLen))
}
