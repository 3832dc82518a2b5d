package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewRevision returns a ULID stamped with t. Revisions created within the
// same millisecond stay lexicographically increasing, so sorting by the
// string sorts by write order.
func NewRevision(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	rev, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Monotonic entropy only overflows after 2^80 IDs in one millisecond,
		// or when t moves backwards within the same millisecond window.
		rev = ulid.MustNew(ulid.Timestamp(t.UTC()), cryptoRand.Reader)
	}
	return rev.String()
}

// RevisionTime returns the timestamp encoded in a revision ID.
func RevisionTime(rev string) (time.Time, error) {
	u, err := ulid.ParseStrict(rev)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()), nil
}
