package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newCaptureKeyCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "capture-key",
		Short: "Print the name of the next key or mouse button pressed",
		Long: `Wait for the next key or mouse button press and print its name, ready to be
used as hotkey.toggle in the config file or with 'autotap run --toggle'.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("Press a key or mouse button..."))
			name, err := captureKey(ctx, a.cfg.Hotkey.Backend, a.cfg.Hotkey)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "how long to wait for input")
	return cmd
}
