// internal/wizard/submit/reference.go
package submit

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// NewReference builds a tracking reference of the form REQ-YYYYMMDD-NNNNN.
// The numeric suffix is drawn from crypto/rand so concurrent submissions on
// the same day rarely collide.
func NewReference(now time.Time) string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fall back to the clock; uniqueness still holds per nanosecond.
		binary.BigEndian.PutUint64(buf[:], uint64(now.UnixNano()))
	}
	suffix := binary.BigEndian.Uint64(buf[:]) % 100000
	return fmt.Sprintf("REQ-%s-%05d", now.Format("20060102"), suffix)
}
