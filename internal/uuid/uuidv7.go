// Package uuid generates the time-ordered identifiers used as primary keys.
// Activity sources order by (created_at, id), so ids minted for an event
// should carry the event's own timestamp.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 for the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a UUIDv7 whose 48-bit timestamp prefix is t in milliseconds.
func NewAt(t time.Time) string {
	var id googleuuid.UUID

	binary.BigEndian.PutUint64(id[0:8], uint64(t.UnixMilli())<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		return googleuuid.NewString()
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return id.String()
}

// Timestamp extracts the millisecond timestamp embedded in a UUIDv7.
func Timestamp(s string) (time.Time, bool) {
	parsed, err := googleuuid.Parse(s)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	ms := binary.BigEndian.Uint64(parsed[0:8]) >> 16
	return time.UnixMilli(int64(ms)), true
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
