package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestFetchSightingsSendsCredentials(t *testing.T) {
	var gotCookie, gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if ck, err := r.Cookie(auth.CookieName); err == nil {
			gotCookie = ck.Value
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"1","plateNumber":"B1000XYZ","region":"Jakarta","timestamp":"1635769200000"}]}`)
	})
	c.SetSession(auth.New("tok-123"))

	records, err := c.FetchSightings(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "/get-list", gotPath)
	assert.Equal(t, "tok-123", gotCookie)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, models.Millis(1635769200000), records[0].Timestamp)
}

func TestFetchSightingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    ErrorKind
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"no session"}`, KindAuthorization, "session was rejected"},
		{"forbidden", http.StatusForbidden, ``, KindAuthorization, "session was rejected"},
		{"server error", http.StatusInternalServerError, `boom`, KindStatus, "HTTP 500"},
		{"bad json", http.StatusOK, `{"data":[`, KindMalformed, "could not be read"},
		{"missing data", http.StatusOK, `{"items":[]}`, KindMalformed, "could not be read"},
		{"wrong record shape", http.StatusOK, `{"data":[{"timestamp":"later"}]}`, KindMalformed, "could not be read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := c.FetchSightings(context.Background())
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, fe.Kind)
			assert.True(t, IsKind(err, tt.want))
			assert.Contains(t, UserMessage(err), tt.wantMsg)
		})
	}
}

func TestFetchSightingsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second, nil)
	require.NoError(t, err)

	_, err = c.FetchSightings(context.Background())
	assert.True(t, IsKind(err, KindNetwork))
}

func TestFetchSightingAndWhoAmI(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get-list/abc":
			fmt.Fprint(w, `{"data":{"id":"abc","plateNumber":"D1XYZ","region":"Bandung","timestamp":5}}`)
		case "/whoami":
			fmt.Fprint(w, `{"uid":"user-7"}`)
		default:
			http.NotFound(w, r)
		}
	})

	s, err := c.FetchSighting(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "D1XYZ", s.PlateNumber)

	_, err = c.FetchSighting(context.Background(), "missing")
	assert.True(t, IsKind(err, KindNotFound))

	uid, err := c.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-7", uid)
}

func TestAnonymousSessionSendsNoCredentials(t *testing.T) {
	var hadCookie bool
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(auth.CookieName)
		hadCookie = err == nil
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":[]}`)
	})

	c.SetSession(auth.New("first"))
	c.SetSession(auth.Session{})

	records, err := c.FetchSightings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, hadCookie)
	assert.Empty(t, gotAuth)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("ftp://example.com", 0, nil)
	assert.Error(t, err)
}

func TestSessionSwitchDuringFetch(t *testing.T) {
	var mu sync.Mutex
	var headers []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[]}`)
	})
	c.SetSession(auth.New("tok0"))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.FetchSightings(context.Background())
			errs <- err
		}()
	}
	for i := 1; i <= 20; i++ {
		c.SetSession(auth.New(fmt.Sprintf("tok%d", i)))
		_ = c.Session()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, headers, 20)
	for _, h := range headers {
		assert.True(t, strings.HasPrefix(h, "Bearer tok"), "header %q", h)
	}
	assert.Equal(t, "tok20", c.Session().Token)
}
