package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/tablemap/internal/config"
	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `{"data":{"restaurant":{"items":[
	{"name":"Nando's Camden","url":"https://example.com/camden","geo":{"address":{"streetAddress":"57-58 Chalk Farm Rd","addressLocality":"London","postalCode":"NW1 8AN"}}},
	{"name":"Nando's Brixton","url":"https://example.com/brixton","geo":{"address":{"streetAddress":"234-244 Stockwell Rd","addressLocality":"London"}}}
]}}}`

func testConfig(t *testing.T, apiURL, force string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.API.URL = apiURL
	cfg.API.Timeout = 5 * time.Second
	cfg.Cache.Driver = config.DriverBolt
	cfg.Cache.Path = t.TempDir()
	cfg.Network.Force = force
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg, logging.NullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestApp_LoadOnlineThenOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL, "online")
	a, err := New(cfg, logging.NullLogger())
	require.NoError(t, err)

	res := a.Load(context.Background(), "UK")
	require.NoError(t, res.Err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "London", res.Items[0].Locality())

	entry, ok := a.Snapshot(context.Background())
	require.True(t, ok)
	assert.Len(t, entry.Items, 2)
	require.NoError(t, a.Close())

	// Same cache directory, now pinned offline
	offline := testConfig(t, srv.URL, "offline")
	offline.Cache.Path = cfg.Cache.Path
	b := newApp(t, offline)

	res = b.Load(context.Background(), "UK")
	require.NoError(t, res.Err)
	assert.True(t, res.Offline)
	assert.True(t, res.FromCache)
	assert.Len(t, res.Items, 2)

	res = b.Load(context.Background(), "USA")
	require.NoError(t, res.Err)
	assert.Empty(t, res.Items)
}

func TestApp_OfflineWithoutSnapshot(t *testing.T) {
	a := newApp(t, testConfig(t, "http://127.0.0.1:1/list.json", "offline"))

	res := a.Load(context.Background(), "UK")
	assert.ErrorIs(t, res.Err, domain.ErrUnavailable)
	assert.Empty(t, res.Items)
}

func TestApp_ClearSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	a := newApp(t, testConfig(t, srv.URL, "online"))
	require.NoError(t, a.Load(context.Background(), "UK").Err)

	require.NoError(t, a.ClearSnapshot(context.Background()))
	_, ok := a.Snapshot(context.Background())
	assert.False(t, ok)
}

func TestApp_CustomLiveScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL, "online")
	cfg.Data.LiveScope = "IE"
	a := newApp(t, cfg)

	assert.Empty(t, a.Load(context.Background(), "UK").Items)
	assert.Len(t, a.Load(context.Background(), "IE").Items, 2)
}

func TestNew_CatalogFile(t *testing.T) {
	cfg := testConfig(t, "https://example.com/list.json", "online")

	cfg.Catalog.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, logging.NullLogger())
	assert.ErrorContains(t, err, "catalog")

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`continents: [Europe]
countries:
  - id: IE
    label: Ireland
    continent: Europe
`), 0o644))
	cfg.Catalog.File = path
	a := newApp(t, cfg)
	assert.Len(t, a.Catalog.Countries(), 1)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(testConfig(t, "", "online"), logging.NullLogger())
	assert.Error(t, err)
}
