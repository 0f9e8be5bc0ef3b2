package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// At returns an account identifier whose time component is t, so
// identifiers sort in signup order.
func At(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}
