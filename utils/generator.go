package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const suffixLength = 4
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateBookingNumber returns a human-readable booking reference like
// BK1709286543214X7QP. The millisecond timestamp keeps references roughly
// ordered; the random suffix disambiguates same-millisecond bookings.
func GenerateBookingNumber() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, suffixLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}

	return fmt.Sprintf("BK%d%s", time.Now().UnixMilli(), string(b))
}
