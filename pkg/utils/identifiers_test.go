package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNo(t *testing.T) {
	ref := GenerateOrderNo()
	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-F]{8}$`), ref)
	assert.NotEqual(t, ref, GenerateOrderNo())
}

func TestGeneratePaymentNo(t *testing.T) {
	ref := GeneratePaymentNo()
	assert.Regexp(t, regexp.MustCompile(`^PAY-[0-9A-F]{8}$`), ref)
	assert.NotEqual(t, ref, GeneratePaymentNo())
}

func TestGenerateUsername(t *testing.T) {
	name := GenerateUsername()
	assert.Len(t, name, 7)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{7}$`), name)
	assert.NotEqual(t, name, GenerateUsername())
}
