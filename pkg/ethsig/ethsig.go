package ethsig

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidSignature is returned for malformed or unrecoverable signatures
var ErrInvalidSignature = errors.New("invalid signature")

// RecoverAddress recovers the signer address from an EIP-191 personal_sign
// signature over message. The returned address is lower-cased hex.
func RecoverAddress(message, signatureHex string) (string, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return "", ErrInvalidSignature
	}
	if len(sig) != crypto.SignatureLength {
		return "", ErrInvalidSignature
	}

	// Wallets encode the recovery id as 27/28 per the legacy convention.
	recovered := make([]byte, len(sig))
	copy(recovered, sig)
	if recovered[crypto.RecoveryIDOffset] >= 27 {
		recovered[crypto.RecoveryIDOffset] -= 27
	}
	if recovered[crypto.RecoveryIDOffset] > 1 {
		return "", ErrInvalidSignature
	}

	hash := accounts.TextHash([]byte(message))
	pubKey, err := crypto.SigToPub(hash, recovered)
	if err != nil {
		return "", ErrInvalidSignature
	}

	return strings.ToLower(crypto.PubkeyToAddress(*pubKey).Hex()), nil
}

// Verify reports whether signatureHex over message was produced by the
// holder of address. Address comparison is case-insensitive.
func Verify(address, message, signatureHex string) bool {
	recovered, err := RecoverAddress(message, signatureHex)
	if err != nil {
		return false
	}
	return strings.EqualFold(recovered, address)
}
