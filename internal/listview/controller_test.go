package listview

import (
	"errors"
	"math"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/platewatch/internal/models"
)

type recordingNavigator struct {
	opened []string
	err    error
}

func (n *recordingNavigator) Open(id string) error {
	n.opened = append(n.opened, id)
	return n.err
}

func loaded(t *testing.T, c *Controller, records []models.Sighting) {
	t.Helper()
	ticket := c.BeginFetch()
	require.True(t, c.CompleteFetch(ticket, records, nil))
}

func TestControllerInitialState(t *testing.T) {
	c := New("https://example.com/list?region=bandung&page=2")
	loaded(t, c, makeSightings(200))

	v := c.View()
	assert.Equal(t, "bandung", c.State().Filter.Region)
	assert.Equal(t, 50, v.TotalRecords)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 1, v.Page, "page 2 of 1 clamps to 1")
	assert.Equal(t, 2, c.State().Page, "requested page is kept until an action changes it")
}

func TestControllerGoToPageClamps(t *testing.T) {
	c := New("")
	loaded(t, c, makeSightings(120))

	c.GoToPage(999)
	v := c.View()
	assert.Equal(t, 3, v.Page)
	assert.Len(t, v.Records, 20)
	assert.Equal(t, 101, v.RowNumber(0))

	for _, p := range []int{math.MinInt, -1, 0, 1, 2, 3, 4, math.MaxInt} {
		c.GoToPage(p)
		assert.GreaterOrEqual(t, c.State().Page, 1)
		assert.GreaterOrEqual(t, c.View().Page, 1)
		assert.LessOrEqual(t, c.View().Page, 3)
	}
}

func TestControllerFilterResetsPage(t *testing.T) {
	loc, err := NewAddress("https://example.com/list")
	require.NoError(t, err)

	c := New("page=3", WithLocation(loc))
	loaded(t, c, makeSightings(200))

	assert.True(t, c.SetFilterField(FilterRegion, "Jakarta"))
	assert.Equal(t, 1, c.State().Page)
	assert.Equal(t, "https://example.com/list?page=1&region=Jakarta", c.Link())
	assert.Equal(t, 50, c.View().TotalRecords)

	c.GoToPage(2)
	assert.Equal(t, "page=2&region=Jakarta", loc.Query())

	assert.True(t, c.SetFilterField(FilterStartDate, "2021-11-10"))
	assert.Equal(t, 1, c.State().Page)
	assert.Equal(t, civil.Date{Year: 2021, Month: 11, Day: 10}, c.State().Filter.StartDate)

	assert.False(t, c.SetFilterField(FilterEndDate, "not-a-date"))
	assert.False(t, c.State().Filter.HasEnd())

	assert.False(t, c.SetFilterField(FilterKey("plate"), "B1"))
}

func TestControllerResetFilters(t *testing.T) {
	loc, err := NewAddress("https://example.com/list")
	require.NoError(t, err)

	c := New("region=medan&startDate=2021-12-01&endDate=2022-01-01&page=2", WithLocation(loc))
	loaded(t, c, makeSightings(200))
	require.NotEqual(t, 200, c.View().TotalRecords)

	c.ResetFilters()
	assert.Equal(t, models.ViewState{Page: 1}, c.State())
	assert.Equal(t, "page=1", loc.Query())
	assert.Equal(t, 200, c.View().TotalRecords)
	assert.Equal(t, 4, c.View().TotalPages)
}

func TestControllerFixedPoint(t *testing.T) {
	c := New("")
	c.SetFilterField(FilterRegion, "Surabaya")
	c.SetFilterField(FilterStartDate, "2021-11-01")
	c.SetFilterField(FilterEndDate, "2022-06-30")
	c.GoToPage(5)

	assert.Equal(t, c.State(), Decode(c.Link()))
	assert.Equal(t, c.State(), New(c.Link()).State())
}

func TestControllerFetchFailure(t *testing.T) {
	c := New("")
	loaded(t, c, makeSightings(10))

	ticket := c.BeginFetch()
	assert.True(t, c.View().Loading)

	fetchErr := errors.New("connection refused")
	require.True(t, c.CompleteFetch(ticket, nil, fetchErr))

	v := c.View()
	assert.False(t, v.Loading)
	assert.ErrorIs(t, v.Err, fetchErr)
	assert.Empty(t, v.Records)
	assert.Equal(t, 0, v.TotalPages)
	assert.Empty(t, v.Controls)

	// Actions keep working against the empty store
	c.GoToPage(3)
	c.SetFilterField(FilterRegion, "x")
	assert.Equal(t, 1, c.View().Page)
}

func TestControllerDropsStaleResults(t *testing.T) {
	c := New("")
	first := c.BeginFetch()
	c.ChangeIdentity()
	second := c.BeginFetch()

	assert.False(t, c.CompleteFetch(first, makeSightings(5), nil))
	assert.Equal(t, 0, c.View().TotalRecords)

	assert.True(t, c.CompleteFetch(second, makeSightings(7), nil))
	assert.Equal(t, 7, c.View().TotalRecords)
}

func TestControllerChangeIdentityClearsStore(t *testing.T) {
	c := New("")
	loaded(t, c, makeSightings(60))
	c.ChangeIdentity()

	v := c.View()
	assert.Equal(t, 0, v.TotalRecords)
	assert.False(t, v.Loading)
	assert.NoError(t, v.Err)
}

func TestControllerViewCache(t *testing.T) {
	c := New("", WithPageSize(10))
	loaded(t, c, makeSightings(35))

	v1 := c.View()
	assert.Equal(t, 4, v1.TotalPages)
	assert.Equal(t, v1, c.View())

	loaded(t, c, makeSightings(5))
	assert.Equal(t, 1, c.View().TotalPages)
}

func TestControllerViewFollowsStoreGeneration(t *testing.T) {
	c := New("", WithPageSize(10))
	loaded(t, c, makeSightings(35))
	v := c.View()
	assert.True(t, v.HasNext)
	assert.False(t, v.HasPrevious)

	gen := c.store.Generation()
	c.store.Replace(makeSightings(12))
	assert.Greater(t, c.store.Generation(), gen)
	assert.Equal(t, 12, c.store.Len())
	assert.Equal(t, 2, c.View().TotalPages)

	c.store.Reset()
	assert.Equal(t, 0, c.store.Len())
	assert.Equal(t, 0, c.View().TotalRecords)
	assert.False(t, c.View().HasNext)
}

func TestControllerActivate(t *testing.T) {
	c := New("")
	loaded(t, c, makeSightings(500))

	controls := c.View().Controls
	last := controls[len(controls)-1]
	require.Equal(t, models.ControlLast, last.Kind)

	assert.True(t, c.Activate(last))
	assert.Equal(t, 10, c.View().Page)
	assert.False(t, c.Activate(models.PageControl{Kind: models.ControlEllipsis}))
	assert.Equal(t, 10, c.View().Page)
}

func TestControllerOpenDetail(t *testing.T) {
	assert.ErrorIs(t, New("").OpenDetail("x"), ErrNoNavigator)

	nav := &recordingNavigator{}
	c := New("", WithNavigator(nav))
	require.NoError(t, c.OpenDetail("id-007"))
	assert.Equal(t, []string{"id-007"}, nav.opened)
}
