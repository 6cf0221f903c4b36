package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReceiptNo generates a human-readable receipt number.
// Format: CHK-YYYYMMDD-XXXXXX
// Example: CHK-20260901-048271
func GenerateReceiptNo(at time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; fall back to the clock so checkout still completes.
		n = big.NewInt(at.UnixNano() % 1000000)
	}
	return fmt.Sprintf("CHK-%s-%06d", at.Format("20060102"), n.Int64())
}
