package ui

import "github.com/charmbracelet/bubbles/key"

// sightingsKeyMap holds every binding of the sightings browser
type sightingsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	FocusPager key.Binding
	Region     key.Binding
	StartDate  key.Binding
	EndDate    key.Binding
	Reset      key.Binding
	Open       key.Binding
	Detail     key.Binding
	CopyLink   key.Binding
	Refresh    key.Binding
	Session    key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newSightingsKeyMap() sightingsKeyMap {
	return sightingsKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage:   key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next page")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev page")),
		FirstPage:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		LastPage:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		FocusPager: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pager")),
		Region:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "region")),
		StartDate:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start date")),
		EndDate:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end date")),
		Reset:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "reset filters")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Detail:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "details")),
		CopyLink:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Session:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "session")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k sightingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Region, k.Reset, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k sightingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.FocusPager},
		{k.Region, k.StartDate, k.EndDate, k.Reset},
		{k.Open, k.Detail, k.CopyLink, k.Export},
		{k.Refresh, k.Session, k.Help, k.Quit},
	}
}
