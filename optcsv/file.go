package optcsv

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultOpenAttempts = 3
	defaultOpenDelay    = time.Second
)

// OpenRetry opens path for reading, waiting delay between failed attempts.
// The last error is returned once the attempt budget runs out; attempts
// below one are treated as one.
func OpenRetry(path string, attempts int, delay time.Duration) (*os.File, error) {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(delay)
		}
		var f *os.File
		f, err = os.Open(path)
		if err == nil {
			return f, nil
		}
		log.Warnf("open %s failed (attempt %d of %d): %v", path, i+1, attempts, err)
	}
	return nil, fmt.Errorf("open %s: %w", path, err)
}
