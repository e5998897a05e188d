package out

import "context"

// UpdateFunc maps the current value of a key to its next value.
type UpdateFunc func(current []byte, exists bool) ([]byte, error)

// KeyValueStore must serialize Update calls on the same key, including across
// processes sharing the store.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
}
