package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/logging"
	"github.com/mmcdole/tablemap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "restaurant_list_cache_v1"

var restaurants = []domain.Restaurant{
	{Name: "Sea Food Restaurant", URL: "https://sea-food-restaurant-test.com",
		Geo: domain.Geo{Address: domain.Address{StreetAddress: "Main Street", AddressLocality: "London"}}},
	{Name: "Italian Restaurant", URL: "https://italian-restaurant-test.com",
		Geo: domain.Geo{Address: domain.Address{StreetAddress: "Second Street", AddressLocality: "London", PostalCode: "E1 6AN"}}},
}

// failingStore fails every operation
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("read-only") }
func (failingStore) Close() error                              { return nil }

func newCache(t *testing.T, now time.Time) (*Cache[domain.Restaurant], domain.KeyValueStore) {
	t.Helper()
	kv, err := store.NewBoltStore("", "")
	require.NoError(t, err)
	c := New[domain.Restaurant](kv,
		WithClock(func() time.Time { return now }),
		WithLogger(logging.NullLogger()),
	)
	return c, kv
}

func TestCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_123)
	c, _ := newCache(t, now)

	require.NoError(t, c.Write(ctx, key, c.Stamp(restaurants)))

	got, ok := c.Read(ctx, key)
	require.True(t, ok)
	assert.Equal(t, restaurants, got.Items)
	assert.True(t, got.Timestamp.Equal(now))
}

func TestCache_RecordShape(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(t, time.UnixMilli(1000))

	require.NoError(t, c.Write(ctx, key, c.Stamp(nil)))

	raw, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"timestamp":1000,"items":[]}`, raw)
}

func TestCache_ReadMiss(t *testing.T) {
	c, _ := newCache(t, time.Now())
	_, ok := c.Read(context.Background(), key)
	assert.False(t, ok)
}

func TestCache_CorruptRecordIsMiss(t *testing.T) {
	ctx := context.Background()
	c, kv := newCache(t, time.Now())
	require.NoError(t, kv.Set(ctx, key, "{not json"))

	_, ok := c.Read(ctx, key)
	assert.False(t, ok)
}

func TestCache_StorageFailures(t *testing.T) {
	ctx := context.Background()
	c := New[domain.Restaurant](failingStore{}, WithLogger(logging.NullLogger()))

	_, ok := c.Read(ctx, key)
	assert.False(t, ok)

	err := c.Write(ctx, key, c.Stamp(restaurants))
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
	assert.Equal(t, key, se.Key)

	assert.Error(t, c.Clear(ctx, key))
}

func TestCache_IsStale(t *testing.T) {
	now := time.Now()
	c, _ := newCache(t, now)

	assert.False(t, c.IsStale(Entry[domain.Restaurant]{Timestamp: now}))
	assert.False(t, c.IsStale(Entry[domain.Restaurant]{Timestamp: now.Add(-DefaultTTL)}), "exactly TTL old is still fresh")
	assert.True(t, c.IsStale(Entry[domain.Restaurant]{Timestamp: now.Add(-DefaultTTL - time.Millisecond)}))
	assert.True(t, c.IsStale(Entry[domain.Restaurant]{Timestamp: now.Add(-6 * time.Hour)}))
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, _ := newCache(t, time.Now())
	require.NoError(t, c.Write(ctx, key, c.Stamp(restaurants)))

	require.NoError(t, c.Clear(ctx, key))
	_, ok := c.Read(ctx, key)
	assert.False(t, ok)
}
