package ui

import (
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/platewatch/internal/listview"
)

// openURL opens a URL in the default browser (cross-platform)
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// BrowserNavigator opens the detail page of a sighting in the web view
type BrowserNavigator struct {
	address *listview.Address
	logger  *log.Logger
	open    func(string) error
}

// NewBrowserNavigator creates a navigator for detail pages under address
func NewBrowserNavigator(address *listview.Address, logger *log.Logger) *BrowserNavigator {
	return &BrowserNavigator{address: address, logger: logger, open: openURL}
}

// Open implements listview.Navigator
func (n *BrowserNavigator) Open(id string) error {
	url := n.address.DetailURL(id)
	if n.logger != nil {
		n.logger.Info("Opening detail page", "url", url)
	}
	return n.open(url)
}
