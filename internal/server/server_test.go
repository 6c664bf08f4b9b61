package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/platewatch/internal/api"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/db"
	"github.com/thesavant42/platewatch/internal/listview"
)

func newTestServer(t *testing.T) (*httptest.Server, db.Store) {
	t.Helper()
	store, err := db.New(filepath.Join(t.TempDir(), "dev.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	_, err = db.Seed(ctx, store, "alice-token", "alice", 120)
	require.NoError(t, err)
	_, err = db.Seed(ctx, store, "bob-token", "bob", 7)
	require.NoError(t, err)

	srv := httptest.NewServer(New(store, log.New(io.Discard)).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, token := range []string{"", "forged"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/get-list", nil)
		require.NoError(t, err)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, token)
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv, _ := newTestServer(t)

	client, err := api.NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	ctx := context.Background()

	client.SetSession(auth.New("alice-token"))
	uid, err := client.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", uid)

	records, err := client.FetchSightings(ctx)
	require.NoError(t, err)
	require.Len(t, records, 120)

	one, err := client.FetchSighting(ctx, records[5].ID)
	require.NoError(t, err)
	assert.Equal(t, records[5], one)

	// A different identity sees only its own records
	client.SetSession(auth.New("bob-token"))
	records, err = client.FetchSightings(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 7)

	client.SetSession(auth.New("expired"))
	_, err = client.FetchSightings(ctx)
	assert.True(t, api.IsKind(err, api.KindAuthorization))
}

func TestControllerOverServer(t *testing.T) {
	srv, _ := newTestServer(t)

	client, err := api.NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	client.SetSession(auth.New("alice-token"))

	c := listview.New("?region=jakarta&page=1")
	ticket := c.BeginFetch()
	records, err := client.FetchSightings(context.Background())
	require.True(t, c.CompleteFetch(ticket, records, err))

	v := c.View()
	assert.Equal(t, 30, v.TotalRecords)
	assert.Equal(t, 1, v.TotalPages)
	for _, r := range v.Records {
		assert.Equal(t, "Jakarta", r.Region)
	}
}
