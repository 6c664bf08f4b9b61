package listview

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-sql/civil"
	"github.com/thesavant42/platewatch/internal/logging"
	"github.com/thesavant42/platewatch/internal/models"
)

// FilterKey names an editable filter field
type FilterKey string

const (
	FilterRegion    FilterKey = KeyRegion
	FilterStartDate FilterKey = KeyStartDate
	FilterEndDate   FilterKey = KeyEndDate
)

// ErrNoNavigator is returned by OpenDetail when no Navigator was configured
var ErrNoNavigator = errors.New("detail navigation is not available")

// Navigator opens the detail page of a record
type Navigator interface {
	Open(id string) error
}

// Ticket identifies one retrieval cycle
type Ticket uint64

// DerivedView is everything the rendering layer needs for one frame
type DerivedView struct {
	Records      []models.Sighting // records on the effective page
	Page         int               // effective page after clamping
	TotalPages   int
	TotalRecords int // records matching the filter
	Offset       int // position of Records[0] within the filtered set
	Controls     []models.PageControl
	HasPrevious  bool
	HasNext      bool
	Loading      bool
	Err          error
}

// RowNumber returns the 1-based position of the i-th visible record in the filtered set
func (v DerivedView) RowNumber(i int) int {
	return v.Offset + i + 1
}

// Controller owns the view state and derives the visible page from it.
// It is not safe for concurrent use; callers serialize actions on one goroutine.
type Controller struct {
	state     models.ViewState
	store     Store
	filter    Filter
	pageSize  int
	location  Location
	navigator Navigator
	logger    *log.Logger

	loading bool
	err     error
	ticket  Ticket

	cached    *DerivedView
	cachedGen uint64 // store generation the cached view was derived from
}

// Option configures a Controller
type Option func(*Controller)

// WithPageSize sets the number of records per page
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTimeZone sets the zone date bounds are resolved in
func WithTimeZone(zone *time.Location) Option {
	return func(c *Controller) {
		if zone != nil {
			c.filter.Zone = zone
		}
	}
}

// WithLocation mirrors view state into loc after every action
func WithLocation(loc Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithNavigator sets the detail navigation collaborator
func WithNavigator(n Navigator) Option {
	return func(c *Controller) {
		c.navigator = n
	}
}

// WithLogger sets the controller's logger
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller whose initial state is decoded from query.
// The query is read only here; later state flows one way, from actions to the location.
func New(query string, opts ...Option) *Controller {
	c := &Controller{
		state:    Decode(query),
		filter:   Filter{Zone: time.UTC},
		pageSize: DefaultPageSize,
		location: &memoryLocation{},
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("List view initialized",
		"region", c.state.Filter.Region,
		"startDate", models.FormatDate(c.state.Filter.StartDate),
		"endDate", models.FormatDate(c.state.Filter.EndDate),
		"page", c.state.Page)

	return c
}

// State returns the current view state
func (c *Controller) State() models.ViewState {
	return c.state
}

// PageSize returns the number of records per page
func (c *Controller) PageSize() int {
	return c.pageSize
}

// Zone returns the time zone that date bounds are interpreted in
func (c *Controller) Zone() *time.Location {
	if c.filter.Zone == nil {
		return time.UTC
	}
	return c.filter.Zone
}

// Link returns the addressable location of the current state
func (c *Controller) Link() string {
	return c.location.String()
}

// Record looks up a stored record by id
func (c *Controller) Record(id string) (models.Sighting, bool) {
	return c.store.Find(id)
}

// SetFilterField updates one filter field and returns to the first page.
// A malformed date clears that bound; the return value is false in that case.
func (c *Controller) SetFilterField(key FilterKey, value string) bool {
	accepted := true

	switch key {
	case FilterRegion:
		c.state.Filter.Region = value
	case FilterStartDate:
		c.state.Filter.StartDate, accepted = parseBound(value)
	case FilterEndDate:
		c.state.Filter.EndDate, accepted = parseBound(value)
	default:
		c.logger.Warn("Unknown filter field", "key", key)
		return false
	}

	if !accepted {
		c.logger.Debug("Ignoring malformed date", "key", key, "value", value)
	}

	c.state.Page = 1
	c.sync()
	return accepted
}

// parseBound treats empty input as a deliberate clear
func parseBound(value string) (civil.Date, bool) {
	if value == "" {
		return civil.Date{}, true
	}
	return models.ParseDate(value)
}

// ResetFilters clears every filter and returns to the first page
func (c *Controller) ResetFilters() {
	c.state.Filter = models.FilterSpec{}
	c.state.Page = 1
	c.sync()
}

// GoToPage requests a page. Values below 1 become 1;
// values past the last page are clamped when the view is derived.
func (c *Controller) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	c.state.Page = page
	c.sync()
}

// Activate navigates to the target of a pagination control.
// It returns false for controls without a target.
func (c *Controller) Activate(ctrl models.PageControl) bool {
	if !ctrl.Actionable() {
		return false
	}
	c.GoToPage(ctrl.Page)
	return true
}

// OpenDetail navigates to the detail page of a record
func (c *Controller) OpenDetail(id string) error {
	if c.navigator == nil {
		return ErrNoNavigator
	}
	c.logger.Debug("Opening detail", "id", id)
	return c.navigator.Open(id)
}

// BeginFetch starts a retrieval cycle. Only the result carrying the returned
// ticket is accepted by CompleteFetch.
func (c *Controller) BeginFetch() Ticket {
	c.ticket++
	c.loading = true
	c.err = nil
	c.invalidate()
	return c.ticket
}

// CompleteFetch records the outcome of a retrieval cycle.
// A failure leaves the store empty and the error visible.
// It returns false when the ticket was superseded and the result dropped.
func (c *Controller) CompleteFetch(t Ticket, records []models.Sighting, err error) bool {
	if t != c.ticket {
		c.logger.Debug("Dropping stale fetch result", "ticket", t, "current", c.ticket)
		return false
	}

	c.loading = false
	if err != nil {
		c.logger.Error("Fetch failed", "error", err)
		c.store.Reset()
		c.err = err
	} else {
		c.store.Replace(records)
		c.logger.Info("Records loaded", "count", c.store.Len())
		c.err = nil
	}
	c.invalidate()
	return true
}

// ChangeIdentity discards records retrieved for the previous identity and
// invalidates any retrieval still in flight. The caller starts a new fetch.
func (c *Controller) ChangeIdentity() {
	c.ticket++
	c.loading = false
	c.err = nil
	c.store.Reset()
	c.invalidate()
}

// View derives the visible page from the store and view state
func (c *Controller) View() DerivedView {
	if c.cached != nil && c.cachedGen == c.store.Generation() {
		return *c.cached
	}

	// One filtering pass feeds both the count and the slice
	filtered := c.filter.Apply(c.store.view(), c.state.Filter)
	page := Paginate(filtered, c.pageSize, c.state.Page)

	v := DerivedView{
		Records:      page.Items,
		Page:         page.Number,
		TotalPages:   page.TotalPages,
		TotalRecords: page.TotalItems,
		Offset:       page.Offset,
		Controls:     BuildControls(page.Number, page.TotalPages),
		HasPrevious:  page.HasPrevious(),
		HasNext:      page.HasNext(),
		Loading:      c.loading,
		Err:          c.err,
	}
	c.cached = &v
	c.cachedGen = c.store.Generation()
	return v
}

// Filtered returns every record matching the current filter, across all pages
func (c *Controller) Filtered() []models.Sighting {
	return c.filter.Apply(c.store.view(), c.state.Filter)
}

func (c *Controller) sync() {
	c.location.Replace(Encode(c.state))
	c.invalidate()
}

func (c *Controller) invalidate() {
	c.cached = nil
}
