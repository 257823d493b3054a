// Package utils holds small helpers shared across the server.
package utils

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

var idCounter uint32

// GenerateID returns a 24-character hex request identifier. The layout is
// ObjectID-like: 4 bytes of unix time, 5 random bytes, and a 3-byte rolling
// counter, so ids are unique per process and sort roughly by creation time.
func GenerateID() string {
	var id [12]byte

	binary.BigEndian.PutUint32(id[:4], uint32(time.Now().Unix()))
	_, _ = rand.Read(id[4:9])

	n := atomic.AddUint32(&idCounter, 1)
	id[9] = byte(n >> 16)
	id[10] = byte(n >> 8)
	id[11] = byte(n)

	return hex.EncodeToString(id[:])
}
