package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply all pending migrations in order",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
		applied, err := a.manager.ApplyAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", applied)
		return nil
	}),
}

var revertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Revert the most recently applied migration",
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app) error {
		migration, err := a.manager.RevertLast(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s\n", migration)
		return nil
	}),
}
