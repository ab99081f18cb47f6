package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

// Card material here is simulation-only. math/rand is fine for fake PANs and
// CVVs; real card material must never come from a non-cryptographic source.

// GenerateCardNumber generates a card number with the specified prefix and length
func GenerateCardNumber(prefix string, length int) (string, error) {
	if length < len(prefix) || length > 19 {
		return "", fmt.Errorf("invalid card number length: %d", length)
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	for i := 0; i < length-len(prefix); i++ {
		builder.WriteByte(byte(rand.Intn(10)) + '0')
	}

	return builder.String(), nil
}

// GenerateCVV generates a 3-digit CVV code
func GenerateCVV() string {
	return fmt.Sprintf("%03d", 100+rand.Intn(900))
}

// MaskPAN masks a card number for display, keeping the leading
// four and trailing four digits: "4111 **** **** 1234".
func MaskPAN(pan string) string {
	if len(pan) < 8 {
		return pan
	}
	return fmt.Sprintf("%s **** **** %s", pan[:4], pan[len(pan)-4:])
}

// Last4 returns the trailing four digits of a card number
func Last4(pan string) string {
	if len(pan) < 4 {
		return pan
	}
	return pan[len(pan)-4:]
}
