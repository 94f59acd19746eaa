package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// wordlist is the BIP39 English wordlist (2048 words).
// Two words plus a number give 2048 × 2048 × 100 = 419 million combinations.
var wordlist = wordlists.English

// inviteKeyChecker is the uniqueness lookup the generator needs from the store.
type inviteKeyChecker interface {
	InviteKeyExists(ctx context.Context, inviteKey string) (int64, error)
}

// InviteKeyService generates unique, human-readable keys for joining an
// organization. Keys follow the pattern "word-word-number" (e.g., "apple-river-42").
type InviteKeyService struct {
	store inviteKeyChecker
	rng   *rand.Rand
}

// NewInviteKeyService creates an InviteKeyService with its own random source.
func NewInviteKeyService(store inviteKeyChecker) *InviteKeyService {
	return &InviteKeyService{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate creates a unique invite key, retrying if collisions occur.
// Returns an error if no unique key can be found after 100 attempts.
func (s *InviteKeyService) Generate(ctx context.Context) (string, error) {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		word1 := wordlist[s.rng.Intn(len(wordlist))]
		word2 := wordlist[s.rng.Intn(len(wordlist))]
		num := s.rng.Intn(100)
		key := fmt.Sprintf("%s-%s-%d", word1, word2, num)

		exists, err := s.store.InviteKeyExists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check key existence: %w", err)
		}

		if exists == 0 {
			return key, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique key after %d attempts", maxAttempts)
}
