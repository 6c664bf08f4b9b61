package models

import "strconv"

// ControlKind identifies the role of a pagination control
type ControlKind int

const (
	ControlFirst ControlKind = iota
	ControlPrev
	ControlNumber
	ControlEllipsis
	ControlNext
	ControlLast
)

// Labels shown on the pagination bar
const (
	LabelFirst    = "<<"
	LabelPrev     = "<"
	LabelEllipsis = "..."
	LabelNext     = ">"
	LabelLast     = ">>"
)

// PageControl is one entry of the pagination bar
type PageControl struct {
	Kind    ControlKind
	Label   string
	Page    int  // target page, 0 when the control has no target
	Current bool // true for the numbered control of the current page
}

// Actionable reports whether activating the control navigates somewhere
func (c PageControl) Actionable() bool {
	return c.Page > 0
}

// NumberControl builds the control for page n
func NumberControl(n, current int) PageControl {
	return PageControl{
		Kind:    ControlNumber,
		Label:   strconv.Itoa(n),
		Page:    n,
		Current: n == current,
	}
}
