package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finflow-dashboard/internal/dashboard"
	"finflow-dashboard/internal/domain"
	"finflow-dashboard/internal/util"
)

func newListCmd(config func() *Config) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the contact's transactions",
		Long: `List the transactions of a contact, newest first.

Use --status to show only Pending, Completed or Failed transactions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := domain.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			s := newSession(cmd, config())
			d, err := s.open(s.cfg.Contact)
			if err != nil {
				return err
			}
			d.SetStatusFilter(cmd.Context(), filter)
			return s.finish(d)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "show only transactions with this status")
	return cmd
}

func newCreateCmd(config func() *Config) *cobra.Command {
	var amount string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Pending transaction for the contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd, config())
			d, err := s.open(s.cfg.Contact)
			if err != nil {
				return err
			}

			d.Mount(cmd.Context())
			d.SetAmount(amount)
			d.Create(cmd.Context())
			return s.finish(d)
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "positive amount of the new transaction")
	return cmd
}

func newMarkCmd(config func() *Config) *cobra.Command {
	return &cobra.Command{
		Use:       "mark completed|failed <transaction-id>...",
		Short:     "Move the given transactions to Completed or Failed",
		ValidArgs: []string{"completed", "failed"},
		Args:      cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var status domain.TransactionStatus
			switch strings.ToLower(args[0]) {
			case "completed":
				status = domain.TransactionStatusCompleted
			case "failed":
				status = domain.TransactionStatusFailed
			default:
				return fmt.Errorf("unknown target status %q, want completed or failed", args[0])
			}

			s := newSession(cmd, config())
			d, err := s.open(s.cfg.Contact)
			if err != nil {
				return err
			}

			d.Mount(cmd.Context())
			d.SetSelection(args[1:])
			d.SetStatus(cmd.Context(), status)
			return s.finish(d)
		},
	}
}

func newContactCmd(config func() *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a contact and show its (empty) dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}

			s := newSession(cmd, config())
			id, err := s.client.CreateContact(cmd.Context(), name)
			if err != nil {
				s.logger.Warn("Failed to create contact", "error", err)
				s.notifier.Notify(dashboard.TitleError, util.UserMessage(err, util.GenericErrorMessage), dashboard.SeverityError)
				return ErrReported
			}
			s.notifier.Notify(dashboard.TitleSuccess, "Contact created: "+id, dashboard.SeveritySuccess)

			d, err := s.open(id)
			if err != nil {
				return err
			}
			d.Mount(cmd.Context())
			return s.finish(d)
		},
	}
	create.Flags().StringVarP(&name, "name", "n", "", "display name of the contact")

	cmd.AddCommand(create)
	return cmd
}
