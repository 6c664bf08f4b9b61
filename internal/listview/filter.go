package listview

import (
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/thesavant42/platewatch/internal/models"
	"golang.org/x/text/cases"
)

// Filter applies a FilterSpec to a record collection.
// Date bounds resolve to midnight in Zone, which defaults to UTC.
type Filter struct {
	Zone *time.Location
}

// Apply returns the records matching spec, in their original order
func (f Filter) Apply(records []models.Sighting, spec models.FilterSpec) []models.Sighting {
	zone := f.Zone
	if zone == nil {
		zone = time.UTC
	}

	// Fold once per pass rather than per record
	folder := cases.Fold()
	region := folder.String(spec.Region)

	var start, end models.Millis
	hasStart, hasEnd := spec.HasStart(), spec.HasEnd()
	if hasStart {
		start = startOfDay(spec.StartDate, zone)
	}
	if hasEnd {
		// The end bound is the start of the end day, so later sightings
		// on that same day are excluded.
		end = startOfDay(spec.EndDate, zone)
	}

	out := make([]models.Sighting, 0, len(records))
	for _, r := range records {
		if region != "" && !strings.Contains(folder.String(r.Region), region) {
			continue
		}
		if hasStart && r.Timestamp < start {
			continue
		}
		if hasEnd && r.Timestamp > end {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Apply filters records with the default UTC zone
func Apply(records []models.Sighting, spec models.FilterSpec) []models.Sighting {
	return Filter{}.Apply(records, spec)
}

func startOfDay(d civil.Date, zone *time.Location) models.Millis {
	return models.MillisOf(d.In(zone))
}
