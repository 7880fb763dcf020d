// Package ui renders the dashboard in a terminal.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"

	"finflow-dashboard/internal/dashboard"
)

// Notifier prints dashboard notifications with pterm prefix printers.
type Notifier struct {
	printers map[dashboard.Severity]*pterm.PrefixPrinter

	mu       sync.Mutex
	failures int
}

// NewNotifier creates a Notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{
		printers: map[dashboard.Severity]*pterm.PrefixPrinter{
			dashboard.SeverityInfo:    pterm.Info.WithWriter(w),
			dashboard.SeveritySuccess: pterm.Success.WithWriter(w),
			dashboard.SeverityWarning: pterm.Warning.WithWriter(w),
			dashboard.SeverityError:   pterm.Error.WithWriter(w),
		},
	}
}

// Notify implements dashboard.Notifier.
func (n *Notifier) Notify(title, message string, severity dashboard.Severity) {
	printer, ok := n.printers[severity]
	if !ok {
		printer = n.printers[dashboard.SeverityInfo]
	}

	n.mu.Lock()
	if severity == dashboard.SeverityWarning || severity == dashboard.SeverityError {
		n.failures++
	}
	printer.Println(fmt.Sprintf("%s: %s", title, message))
	n.mu.Unlock()
}

// Failed reports whether a warning or error has been shown.
func (n *Notifier) Failed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.failures > 0
}
