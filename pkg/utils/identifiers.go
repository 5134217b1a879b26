package utils

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOrderNo returns a new order reference, e.g. ORD-9F86D081
func GenerateOrderNo() string {
	return "ORD-" + randomReference()
}

// GeneratePaymentNo returns a new payment reference, e.g. PAY-27AE41E4
func GeneratePaymentNo() string {
	return "PAY-" + randomReference()
}

// GenerateUsername returns a 7-char lowercase alphanumeric handle for
// wallet-provisioned accounts, e.g. k3x90qa
func GenerateUsername() string {
	buf := make([]byte, 7)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = usernameAlphabet[int(b)%len(usernameAlphabet)]
	}
	return string(buf)
}

func randomReference() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
