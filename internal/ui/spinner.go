package ui

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes an action while displaying a spinner on stderr.
//
// Example:
//
//	var records []models.Sighting
//	var fetchErr error
//	err := RunWithSpinner("Fetching sightings...", func() {
//	    records, fetchErr = client.FetchSightings(ctx)
//	})
//	if err != nil { return err }
//	if fetchErr != nil { return fetchErr }
func RunWithSpinner(title string, action func()) error {
	err := spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Action(action).
		Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return nil
}
