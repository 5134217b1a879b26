package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNonceNotFound is returned when no nonce is pending for a wallet
var ErrNonceNotFound = errors.New("nonce not found or expired")

// NonceStore issues single-use login nonces keyed by wallet address.
// A nonce expires after its TTL and is removed the moment it is consumed,
// so a captured signature cannot be replayed.
type NonceStore struct {
	ttl time.Duration
}

var (
	setNonceValue    = Set
	getDelNonceValue = func(ctx context.Context, key string) (string, error) {
		return client.GetDel(ctx, key).Result()
	}
)

// NewNonceStore creates a nonce store with the given nonce lifetime
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{ttl: ttl}
}

func nonceKey(walletAddress string) string {
	return "auth:nonce:" + walletAddress
}

// Issue generates and stores a fresh nonce for a wallet address. Issuing a
// new nonce overwrites any previous one for the same wallet.
func (s *NonceStore) Issue(ctx context.Context, walletAddress string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(buf)

	if err := setNonceValue(ctx, nonceKey(walletAddress), nonce, s.ttl); err != nil {
		return "", err
	}
	return nonce, nil
}

// Consume atomically retrieves and deletes the pending nonce for a wallet
func (s *NonceStore) Consume(ctx context.Context, walletAddress string) (string, error) {
	nonce, err := getDelNonceValue(ctx, nonceKey(walletAddress))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrNonceNotFound
		}
		return "", err
	}
	return nonce, nil
}
