package service

import (
	"fmt"
	"math/rand"
	"time"
)

// testClock pins the wall clock for reproducible synthetic bills.
var testClock = func() time.Time {
	return time.Date(2025, time.July, 27, 10, 0, 0, 0, time.UTC)
}

// seqIDs returns an ID generator producing id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// testRand returns a deterministic random source.
func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
