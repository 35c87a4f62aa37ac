package pos

import "context"

// IdempotencyStore remembers completed checkouts by client-supplied key so
// a re-submitted request returns the original result instead of selling
// the goods twice
type IdempotencyStore interface {
	// Get returns the transaction number stored for the key, with false
	// when the key is unknown
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the transaction number for the key
	Set(ctx context.Context, key, transactionNumber string) error
}
