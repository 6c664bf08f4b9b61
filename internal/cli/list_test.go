package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/platewatch/internal/config"
	"github.com/thesavant42/platewatch/internal/db"
	"github.com/thesavant42/platewatch/internal/server"
)

// newTestRoot wires a root command to a seeded development backend
func newTestRoot(t *testing.T) (*RootCommand, *bytes.Buffer) {
	t.Helper()

	store, err := db.New(filepath.Join(t.TempDir(), "dev.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = db.Seed(context.Background(), store, "alice-token", "alice", 120)
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(store, log.New(io.Discard)).Routes())
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BackendURL = srv.URL

	root := NewRootCommand(cfg)
	root.spin = func(_ string, action func()) error {
		action()
		return nil
	}
	root.promptSession = func() (string, error) { return "", nil }

	var out bytes.Buffer
	root.SetOutput(&out, io.Discard)
	return root, &out
}

func run(t *testing.T, root *RootCommand, args ...string) error {
	t.Helper()
	root.SetArgs(args)
	return root.Execute()
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestListRegionCSV(t *testing.T) {
	root, out := newTestRoot(t)

	err := run(t, root, "list", "--session", "alice-token", "--region", "jakarta", "--format", "csv", "--all")
	require.NoError(t, err)

	rows := lines(out.String())
	require.Len(t, rows, 31)
	assert.Equal(t, "no,id,plate_number,region,timestamp,date_time", rows[0])
	for _, row := range rows[1:] {
		assert.Contains(t, row, ",Jakarta,")
	}
	assert.True(t, strings.HasPrefix(rows[1], "1,"))
}

func TestListEndDateIsStartOfDay(t *testing.T) {
	root, out := newTestRoot(t)

	// Seeded sightings are at 12:20 UTC, so the one on the end date is excluded
	err := run(t, root, "list", "--session", "alice-token",
		"--start-date", "2021-11-01", "--end-date", "2021-11-03", "--format", "csv")
	require.NoError(t, err)

	rows := lines(out.String())
	require.Len(t, rows, 3)
	assert.Contains(t, rows[1], "B1000XYZ")
	assert.Contains(t, rows[2], "B1001XYZ")
}

func TestListTablePage(t *testing.T) {
	root, out := newTestRoot(t)

	err := run(t, root, "list", "--session", "alice-token", "--page", "2")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Page 2/3")
	assert.Contains(t, text, "Matching: 120")
	assert.Contains(t, text, "B1050XYZ")
	assert.NotContains(t, text, "B1049XYZ")
	assert.Contains(t, text, "page=2")
}

func TestListPageBeyondRangeClamps(t *testing.T) {
	root, out := newTestRoot(t)

	err := run(t, root, "list", "--session", "alice-token", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Page 3/3")
}

func TestListStateFromURL(t *testing.T) {
	root, out := newTestRoot(t)

	err := run(t, root, "list", "--session", "alice-token", "--format", "markdown",
		"http://localhost:3000/list?region=bandung&page=1")
	require.NoError(t, err)

	rows := lines(out.String())
	require.Len(t, rows, 32)
	for _, row := range rows[2:] {
		assert.Contains(t, row, "| Bandung |")
	}
}

func TestListFlagsOverrideURL(t *testing.T) {
	root, out := newTestRoot(t)

	// A filter change always returns to the first page
	err := run(t, root, "list", "--session", "alice-token", "--region", "medan",
		"http://localhost:3000/list?region=bandung&page=3")
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Page 1/1")
	assert.Contains(t, text, "region=medan")
}

func TestListInvalidDate(t *testing.T) {
	root, _ := newTestRoot(t)

	err := run(t, root, "list", "--session", "alice-token", "--start-date", "2021-13-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start-date")
}

func TestListUnknownFormat(t *testing.T) {
	root, _ := newTestRoot(t)

	err := run(t, root, "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestListRejectedSession(t *testing.T) {
	root, _ := newTestRoot(t)

	err := run(t, root, "list", "--session", "expired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session was rejected")
}

func TestInvalidConfiguration(t *testing.T) {
	root, _ := newTestRoot(t)

	err := run(t, root, "list", "--page-size", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size")
}
