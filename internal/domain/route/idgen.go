package route

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"time"
)

// NewTabID generates an opaque, globally unique tab identifier: a random
// UUIDv4. If the system entropy source fails, it falls back to a
// timestamp+random id so tab creation never fails.
func NewTabID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fallbackID()
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10

	return fmt.Sprintf("%s-%s-%s-%s-%s",
		hex.EncodeToString(b[0:4]),
		hex.EncodeToString(b[4:6]),
		hex.EncodeToString(b[6:8]),
		hex.EncodeToString(b[8:10]),
		hex.EncodeToString(b[10:16]),
	)
}

// fallbackID builds a tab id from the clock plus weak randomness. Collisions
// are still practically impossible within one workspace.
func fallbackID() string {
	return fmt.Sprintf("tab-%d-%06d", time.Now().UnixNano(), weakRand(1000000))
}

func weakRand(n int64) int64 {
	// crypto/rand already failed once; try it a second time before falling
	// back to math/rand.
	if v, err := rand.Int(rand.Reader, big.NewInt(n)); err == nil {
		return v.Int64()
	}
	return mathrand.Int63n(n)
}
