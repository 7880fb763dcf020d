package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"finflow-dashboard/internal/dashboard"
)

// RenderDashboard writes the filter line, the transaction table and the
// state of the bulk actions.
func RenderDashboard(w io.Writer, d *dashboard.Dashboard) error {
	if _, err := fmt.Fprintln(w, summary(d)); err != nil {
		return err
	}

	if d.Err() != nil {
		_, err := fmt.Fprintln(w, pterm.Gray(dashboard.MsgLoadFailed))
		return err
	}
	if !d.HasTransactions() {
		_, err := fmt.Fprintln(w, pterm.Gray("No transactions"))
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(TableData(d.Rows())).Srender()
	if err != nil {
		return fmt.Errorf("render transactions: %w", err)
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

// TableData lays rows out under the dashboard columns, prefixed by the ID
// column the command line needs to address rows.
func TableData(rows []dashboard.Row) pterm.TableData {
	header := []string{"ID"}
	for _, col := range dashboard.Columns {
		header = append(header, col.Label)
	}

	data := pterm.TableData{header}
	for _, row := range rows {
		data = append(data, []string{row.ID, row.Amount, row.Status, row.Created})
	}
	return data
}

func summary(d *dashboard.Dashboard) string {
	filter := "All"
	for _, opt := range dashboard.StatusOptions() {
		if opt.Value == d.StatusFilter() {
			filter = opt.Label
		}
	}

	bulk := "enabled"
	if d.BulkActionsDisabled() {
		bulk = "disabled"
	}

	parts := []string{
		"Contact: " + d.ContactID(),
		"Status: " + filter,
		fmt.Sprintf("Selected: %d", len(d.SelectedIDs())),
		"Bulk actions: " + bulk,
	}
	return pterm.DefaultBasicText.Sprint(strings.Join(parts, " | "))
}
