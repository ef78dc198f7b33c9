package tui

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/loader"
	"github.com/mmcdole/tablemap/internal/logging"
	"github.com/mmcdole/tablemap/internal/snapshot"
	"github.com/mmcdole/tablemap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelObserver_KeepsNewest(t *testing.T) {
	ch := make(chan loader.Result, 1)
	o := NewChannelObserver(ch)

	o.OnResult(loader.Result{Scope: "first"})
	o.OnResult(loader.Result{Scope: "second"})

	got := <-ch
	assert.Equal(t, "second", got.Scope)
	assert.Empty(t, ch)
}

// alwaysOnline reports online once and never changes
type alwaysOnline struct{}

func (alwaysOnline) Subscribe(onChange func(bool)) func() {
	onChange(true)
	return func() {}
}

func TestLoadCmd_DeliversResultsThroughObserver(t *testing.T) {
	kv, err := store.NewBoltStore("", "")
	require.NoError(t, err)
	cache := snapshot.New[domain.Restaurant](kv, snapshot.WithLogger(logging.NullLogger()))

	ch := make(chan loader.Result, 8)
	l := loader.New(alwaysOnline{}, cache,
		domain.FetcherFunc(func(context.Context) ([]domain.Restaurant, error) { return restaurants, nil }),
		loader.WithLogger(logging.NullLogger()),
		loader.WithObserver(NewChannelObserver(ch)),
	)
	defer l.Close()

	msg := LoadCmd(context.Background(), l, "UK")()
	assert.Equal(t, LoadStartedMsg{Scope: "UK"}, msg)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("no committed result")
		default:
		}
		res := WaitForResultCmd(ch)().(ResultMsg).Result
		if !res.Loading {
			assert.Equal(t, restaurants, res.Items)
			return
		}
	}
}
