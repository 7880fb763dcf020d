package dashboard

// Severity is the visual weight of a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier receives user-facing notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, message string, severity Severity)

func (f NotifierFunc) Notify(title, message string, severity Severity) {
	f(title, message, severity)
}

// Notification titles and messages shown by the dashboard.
const (
	TitleSuccess         = "Success"
	TitleError           = "Error"
	TitleValidationError = "Validation Error"

	MsgLoadFailed         = "Failed to load transactions"
	MsgTransactionCreated = "Transaction created!"
	MsgInvalidAmount      = "Enter a valid positive amount"
	MsgStatusUpdatedFmt   = "Status updated to %s"
)
