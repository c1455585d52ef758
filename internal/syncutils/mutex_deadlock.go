//go:build deadlock

package syncutils

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// Building with -tags deadlock swaps every graph lock for a detecting one.
type Mutex = deadlock.Mutex
type RWMutex = deadlock.RWMutex

func init() {
	deadlock.Opts.DeadlockTimeout = 20 * time.Second
}
