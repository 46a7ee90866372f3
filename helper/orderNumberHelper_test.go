package helper

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	today := time.Now().Format("20060102")

	assert.Equal(t, fmt.Sprintf("ORD-%s-001", today), GenerateOrderNumber(1))
	assert.Equal(t, fmt.Sprintf("ORD-%s-042", today), GenerateOrderNumber(42))
	// Past three digits the sequence just grows, no truncation
	assert.Equal(t, fmt.Sprintf("ORD-%s-1000", today), GenerateOrderNumber(1000))
}

func TestStartOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Bangkok")
	in := time.Date(2026, 1, 15, 23, 59, 59, 123, loc)

	out := StartOfDay(in)

	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, loc), out)
	assert.Equal(t, loc, out.Location())
}
