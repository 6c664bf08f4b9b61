package listview

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/thesavant42/platewatch/internal/models"
)

// Query keys of the addressable view state
const (
	KeyRegion    = "region"
	KeyStartDate = "startDate"
	KeyEndDate   = "endDate"
	KeyPage      = "page"
)

// Encode serializes state into a canonical query string (no leading '?').
// Absent filters are omitted; page is always present.
func Encode(state models.ViewState) string {
	v := url.Values{}
	if state.Filter.Region != "" {
		v.Set(KeyRegion, state.Filter.Region)
	}
	if state.Filter.HasStart() {
		v.Set(KeyStartDate, models.FormatDate(state.Filter.StartDate))
	}
	if state.Filter.HasEnd() {
		v.Set(KeyEndDate, models.FormatDate(state.Filter.EndDate))
	}

	page := state.Page
	if page < 1 {
		page = 1
	}
	v.Set(KeyPage, strconv.Itoa(page))

	return v.Encode()
}

// Decode reads view state from a query string or a full URL.
// Malformed dates decode as absent and a missing or invalid page decodes as 1.
func Decode(raw string) models.ViewState {
	state := models.ViewState{Page: 1}

	// ParseQuery keeps every pair it could decode
	v, _ := url.ParseQuery(queryPart(raw))

	state.Filter.Region = v.Get(KeyRegion)
	if d, ok := models.ParseDate(v.Get(KeyStartDate)); ok {
		state.Filter.StartDate = d
	}
	if d, ok := models.ParseDate(v.Get(KeyEndDate)); ok {
		state.Filter.EndDate = d
	}
	if p, err := strconv.Atoi(v.Get(KeyPage)); err == nil && p >= 1 {
		state.Page = p
	}

	return state
}

// queryPart extracts the query component from a bare query, "?query" or a URL
func queryPart(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[i+1:]
	}
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "/") {
		// A URL without a query carries no state
		return ""
	}
	return raw
}
