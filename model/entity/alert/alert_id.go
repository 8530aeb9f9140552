package alert

import (
	"fmt"
	"math/rand"
	"time"
)

// NewAlertID generates a display id of the form ALERT-<epochMillis>-<rand>.
// Display-only; the (product, warehouse) unique index owns dedup.
func NewAlertID() string {
	return fmt.Sprintf("ALERT-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}
