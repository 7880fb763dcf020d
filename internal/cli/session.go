package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"finflow-dashboard/internal/dashboard"
	"finflow-dashboard/internal/recordstore"
	"finflow-dashboard/internal/ui"
	"finflow-dashboard/internal/util"
)

// session holds what one command invocation talks to.
type session struct {
	cfg      *Config
	out      io.Writer
	logger   *slog.Logger
	client   *recordstore.Client
	notifier *ui.Notifier
	bus      *dashboard.ChangeBus
}

func newSession(cmd *cobra.Command, cfg *Config) *session {
	logger := util.NewTextLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	return &session{
		cfg:    cfg,
		out:    cmd.OutOrStdout(),
		logger: logger,
		client: recordstore.New(resty.New(), logger, recordstore.Config{
			BaseURL: cfg.APIURL,
			Timeout: cfg.Timeout,
			Debug:   cfg.Debug,
		}),
		notifier: ui.NewNotifier(cmd.OutOrStdout()),
		bus:      dashboard.NewChangeBus(),
	}
}

// open creates a dashboard for contactID without querying.
func (s *session) open(contactID string) (*dashboard.Dashboard, error) {
	if contactID == "" {
		return nil, errors.New("a contact is required, set --contact or DASHBOARD_CONTACT")
	}
	d := dashboard.New(contactID, s.client, s.client, s.notifier,
		dashboard.WithLogger(s.logger),
		dashboard.WithChangeNotifier(s.bus),
		dashboard.WithCurrency(s.cfg.Currency),
	)
	d.Watch(s.bus)
	return d, nil
}

// finish renders d and turns shown failures into ErrReported.
func (s *session) finish(d *dashboard.Dashboard) error {
	if err := ui.RenderDashboard(s.out, d); err != nil {
		return err
	}
	if s.notifier.Failed() {
		return ErrReported
	}
	return nil
}
