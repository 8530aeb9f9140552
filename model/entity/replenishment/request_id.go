package replenishment

import (
	"fmt"
	"math/rand"
	"time"
)

// NewRequestID generates a display id of the form REQ-YYYYMMDD-nnn (UTC
// date, 3-digit random suffix). The suffix is not a sequence: collisions are
// possible and are resolved by the unique index plus a single regenerate.
func NewRequestID() string {
	return fmt.Sprintf("REQ-%s-%d", time.Now().UTC().Format("20060102"), 100+rand.Intn(900))
}
