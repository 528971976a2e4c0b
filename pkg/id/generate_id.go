package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewBatchID returns a random UUID string for upstream merge batches.
func NewBatchID() string {
	return uuid.NewString()
}

// FormatInternalPoID renders the human-facing external PO number,
// e.g. FormatInternalPoID(2026, 7) -> "EPO-2026-0007".
func FormatInternalPoID(year, seq int) string {
	return fmt.Sprintf("EPO-%d-%04d", year, seq)
}
