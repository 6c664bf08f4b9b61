package listview

import "github.com/thesavant42/platewatch/internal/models"

// windowRadius is how many numbered pages are shown on each side of the current one
const windowRadius = 3

// BuildControls returns the pagination bar for current out of total pages.
// An empty collection (total == 0) yields no controls.
func BuildControls(current, total int) []models.PageControl {
	if total < 1 {
		return nil
	}

	controls := make([]models.PageControl, 0, 2*windowRadius+7)

	if current > 1 {
		controls = append(controls,
			models.PageControl{Kind: models.ControlFirst, Label: models.LabelFirst, Page: 1},
			models.PageControl{Kind: models.ControlPrev, Label: models.LabelPrev, Page: current - 1},
		)
	}

	if current > windowRadius+1 {
		controls = append(controls, ellipsis())
	}

	for i := max(1, current-windowRadius); i <= min(total, current+windowRadius); i++ {
		controls = append(controls, models.NumberControl(i, current))
	}

	if current < total-windowRadius {
		controls = append(controls, ellipsis())
	}

	if current < total {
		controls = append(controls,
			models.PageControl{Kind: models.ControlNext, Label: models.LabelNext, Page: current + 1},
			models.PageControl{Kind: models.ControlLast, Label: models.LabelLast, Page: total},
		)
	}

	return controls
}

func ellipsis() models.PageControl {
	return models.PageControl{Kind: models.ControlEllipsis, Label: models.LabelEllipsis}
}
