package transfer

import (
	"fmt"
	"math/rand"
	"time"
)

// NewTransferID generates a display id of the form TRF-YYYYMMDD-nnn (UTC
// date, 3-digit random suffix). Same collision handling as request ids:
// unique index plus a single regenerate.
func NewTransferID() string {
	return fmt.Sprintf("TRF-%s-%d", time.Now().UTC().Format("20060102"), 100+rand.Intn(900))
}
