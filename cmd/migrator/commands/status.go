package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var errPendingMigrations = errors.New("schema has pending migrations")

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List migrations that have not been applied yet",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
		pending, err := a.manager.Pending(ctx)
		if err != nil {
			return err
		}
		for _, migration := range pending {
			fmt.Fprintln(cmd.OutOrStdout(), migration)
		}
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every known migration",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
		statuses, err := a.manager.Status(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATE\tAPPLIED ON")
		for _, s := range statuses {
			appliedOn := "-"
			if s.AppliedOn != nil {
				appliedOn = s.AppliedOn.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.State, appliedOn)
		}
		return w.Flush()
	}),
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Exit non-zero if any migration is pending",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
		return checkSchema(ctx, cmd.OutOrStdout(), a.manager)
	}),
}

type fulfillmentChecker interface {
	CheckFulfillment(ctx context.Context) (bool, error)
}

func checkSchema(ctx context.Context, out io.Writer, checker fulfillmentChecker) error {
	ok, err := checker.CheckFulfillment(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errPendingMigrations
	}
	fmt.Fprintln(out, "Schema is up to date")
	return nil
}
