package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/reportbox/internal/core/report"
	"github.com/colonyops/reportbox/internal/data/provider"
)

const loadTimeout = 10 * time.Second

// loadReason says why records were (re)loaded.
type loadReason string

const (
	reasonInitial loadReason = "initial"
	reasonManual  loadReason = "reload"
	reasonWatch   loadReason = "change"
)

// reportsLoadedMsg carries the result of a provider read.
type reportsLoadedMsg struct {
	records []report.Record
	reason  loadReason
	err     error
}

// sourceChangedMsg is delivered when the watched source changes on disk.
type sourceChangedMsg struct{}

func loadReports(p provider.Provider, reason loadReason) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		records, err := provider.Load(ctx, p)
		return reportsLoadedMsg{records: records, reason: reason, err: err}
	}
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}
