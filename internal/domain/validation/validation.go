// Package validation holds the pure validate-and-normalize functions applied
// at the boundary between transport decoding and domain construction. Every
// function either returns the canonical form of its input or a field-level
// ValidationError; nothing here touches storage.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	domainerrors "paymint.backend/internal/domain/errors"
)

// SupportedChains is the fixed set of chains payments may settle on,
// canonical form lowercase.
var SupportedChains = []string{
	"ethereum", "solana", "polygon", "arbitrum", "binance", "avalanche", "optimism", "base",
}

// evmChains use the 20-byte hex address format (0x + 40 hex chars).
var evmChains = map[string]bool{
	"ethereum":  true,
	"polygon":   true,
	"arbitrum":  true,
	"binance":   true,
	"avalanche": true,
	"optimism":  true,
	"base":      true,
}

// DefaultCurrencies maps each chain to its native currency symbol.
var DefaultCurrencies = map[string]string{
	"ethereum":  "ETH",
	"solana":    "SOL",
	"polygon":   "MATIC",
	"arbitrum":  "ETH",
	"binance":   "BNB",
	"avalanche": "AVAX",
	"optimism":  "ETH",
	"base":      "ETH",
}

var (
	evmAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// NormalizeChain validates chain membership case-insensitively and returns
// the lowercase canonical name.
func NormalizeChain(chain string) (string, error) {
	c := strings.ToLower(chain)
	for _, s := range SupportedChains {
		if c == s {
			return c, nil
		}
	}
	return "", domainerrors.Invalid("chain", "unsupported blockchain, supported options: "+strings.Join(SupportedChains, ", "))
}

// IsEVMChain reports whether the chain uses EVM-style 0x addresses.
func IsEVMChain(chain string) bool {
	return evmChains[strings.ToLower(chain)]
}

// NormalizeWalletAddress validates an address for the given chain and returns
// its canonical form. EVM chains require 0x + 40 hex chars and canonicalize to
// lowercase; solana addresses must be exactly 44 chars with case preserved;
// any other chain only requires a string of at least 5 chars.
func NormalizeWalletAddress(field, address, chain string) (string, error) {
	switch {
	case IsEVMChain(chain):
		if !evmAddressRe.MatchString(address) {
			return "", domainerrors.Invalid(field, "invalid wallet address format for EVM-compatible chain")
		}
		return strings.ToLower(address), nil
	case strings.ToLower(chain) == "solana":
		if len(address) != 44 {
			return "", domainerrors.Invalid(field, "invalid solana address format")
		}
		return address, nil
	default:
		if len(address) < 5 {
			return "", domainerrors.Invalid(field, "invalid wallet address")
		}
		return address, nil
	}
}

// NormalizeTokenAddress applies the wallet address rules to an optional
// token/mint address. An empty value passes through unchanged.
func NormalizeTokenAddress(field, address, chain string) (string, error) {
	if address == "" {
		return "", nil
	}
	return NormalizeWalletAddress(field, address, chain)
}

// NormalizeEVMAddress validates the account-level wallet format used for
// users and invoice client wallets (42-char 0x hex) and lower-cases it.
func NormalizeEVMAddress(field, address string) (string, error) {
	if !evmAddressRe.MatchString(address) {
		return "", domainerrors.Invalid(field, "invalid wallet address format")
	}
	return strings.ToLower(address), nil
}

// NormalizeTxHash validates that a transaction hash starts with 0x and
// returns it lower-cased.
func NormalizeTxHash(field, hash string) (string, error) {
	if !strings.HasPrefix(hash, "0x") {
		return "", domainerrors.Invalid(field, "transaction hash must start with 0x")
	}
	return strings.ToLower(hash), nil
}

// ValidateUsername enforces length >= 3 and the alphanumeric/underscore/
// hyphen character set.
func ValidateUsername(username string) (string, error) {
	if len(username) < 3 {
		return "", domainerrors.Invalid("username", "username must be at least 3 characters")
	}
	if !usernameRe.MatchString(username) {
		return "", domainerrors.Invalid("username", "username can only contain alphanumeric characters, underscores, and hyphens")
	}
	return username, nil
}

// ValidatePasswordStrength enforces length >= 8 with at least one digit and
// one uppercase letter.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerrors.Invalid("password", "password must be at least 8 characters")
	}
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		}
	}
	if !hasDigit {
		return domainerrors.Invalid("password", "password must contain at least one digit")
	}
	if !hasUpper {
		return domainerrors.Invalid("password", "password must contain at least one uppercase letter")
	}
	return nil
}

// ValidateNonNegative rejects negative monetary and quantity values.
func ValidateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domainerrors.Invalid(field, "value cannot be negative")
	}
	return nil
}

// ValidatePositive rejects zero and negative amounts.
func ValidatePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return domainerrors.Invalid(field, "value must be greater than zero")
	}
	return nil
}
