package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autotap/internal/adapters/adbtap"
)

func newDevicesCmd(a *app) *cobra.Command {
	var android bool
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List input devices usable for the toggle hotkey",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if android {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				devices, err := adbtap.ListDevices(ctx, a.cfg.ADB.Path, nil)
				if err != nil {
					return err
				}
				if len(devices) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("no Android devices attached"))
				}
				for _, dev := range devices {
					model := dev.Model
					if model == "" {
						model = "unknown"
					}
					fmt.Fprintf(out, "%s: %s [%s]\n", dev.Serial, model, dev.State)
				}
				return nil
			}
			return listPlatformDevices(out)
		},
	}
	cmd.Flags().BoolVar(&android, "adb", false, "list Android devices attached through adb instead")
	return cmd
}
