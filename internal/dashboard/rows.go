package dashboard

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finflow-dashboard/internal/domain"
)

// CreatedLayout is the date format of the Created column.
const CreatedLayout = "Jan 2, 2006"

// Row is one rendered line of the transaction table.
type Row struct {
	ID      string
	Amount  string // currency-formatted
	Status  string
	Created string
}

// Column describes one table column.
type Column struct {
	Label string
	Field string
	Type  string
}

// Columns are the table columns in display order.
var Columns = []Column{
	{Label: "Amount", Field: "amount", Type: "currency"},
	{Label: "Status", Field: "status", Type: "text"},
	{Label: "Created", Field: "created_at", Type: "date"},
}

// FilterOption is one entry of the status filter selector.
type FilterOption struct {
	Label string
	Value domain.StatusFilter
}

// StatusOptions lists the filter selector entries.
func StatusOptions() []FilterOption {
	return []FilterOption{
		{Label: "All", Value: domain.StatusFilterAll},
		{Label: "Pending", Value: domain.StatusFilter(domain.TransactionStatusPending)},
		{Label: "Completed", Value: domain.StatusFilter(domain.TransactionStatusCompleted)},
		{Label: "Failed", Value: domain.StatusFilter(domain.TransactionStatusFailed)},
	}
}

// Rows renders the current transactions for display.
func (d *Dashboard) Rows() []Row {
	transactions := d.Transactions()
	printer := message.NewPrinter(language.English)

	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, Row{
			ID:      tx.ID,
			Amount:  FormatAmount(printer, tx, d.currency),
			Status:  string(tx.Status),
			Created: tx.CreatedAt.Local().Format(CreatedLayout),
		})
	}
	return rows
}

// FormatAmount renders tx.Amount in its currency, or in fallback when the
// record's currency code is missing or unknown. Digits come from the decimal
// itself, so every stored digit up to the currency's scale is shown.
func FormatAmount(printer *message.Printer, tx domain.Transaction, fallback string) string {
	unit, err := currency.ParseISO(tx.Currency)
	if err != nil {
		unit, err = currency.ParseISO(fallback)
		if err != nil {
			return tx.Amount.StringFixed(2)
		}
	}
	scale, _ := currency.Standard.Rounding(unit)
	return printer.Sprint(currency.Symbol(unit)) + " " + groupThousands(tx.Amount.StringFixed(int32(scale)))
}

// groupThousands inserts "," between groups of three integer digits.
func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac := fixed, ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart, frac = fixed[:dot], fixed[dot:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
