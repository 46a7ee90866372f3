package helper

import (
	"fmt"
	"time"
)

// GenerateOrderNumber formats a human-readable ticket number as
// ORD-YYYYMMDD-SEQ, where SEQ is the per-branch sequence for the day,
// zero-padded to three digits.
func GenerateOrderNumber(sequence int) string {
	now := time.Now()
	return fmt.Sprintf("ORD-%s-%03d", now.Format("20060102"), sequence)
}

// StartOfDay truncates t to local midnight. Ticket sequences and daily
// stats both count from here.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
