package domain

import "context"

// RestaurantFetcher retrieves the full restaurant collection from the remote API.
// Implementations fail with *TransportError; they never interpret partial data.
type RestaurantFetcher interface {
	FetchRestaurants(ctx context.Context) ([]Restaurant, error)
}

// FetcherFunc adapts a function to RestaurantFetcher
type FetcherFunc func(ctx context.Context) ([]Restaurant, error)

func (f FetcherFunc) FetchRestaurants(ctx context.Context) ([]Restaurant, error) {
	return f(ctx)
}

// KeyValueStore is the persistent string store snapshots are written to.
// Get reports a miss with ok == false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
