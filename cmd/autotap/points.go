package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"autotap/internal/core/autoclicker"
	"autotap/internal/pointfile"
)

func newPointsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "List and edit the click points",
	}
	cmd.AddCommand(
		newPointsListCmd(a),
		newPointsAddCmd(a),
		newPointsUpdateCmd(a),
		newPointsRemoveCmd(a),
		newPointsClearCmd(a),
	)
	return cmd
}

// editPoints loads the point file into a Store, applies fn and saves the
// result when fn reports a change.
func (a *app) editPoints(fn func(store *autoclicker.Store) (bool, error)) (*autoclicker.Store, error) {
	points, err := pointfile.Load(a.cfg.PointsFile)
	if err != nil {
		return nil, err
	}
	store := autoclicker.NewStore(nil)
	store.Replace(points)

	changed, err := fn(store)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := pointfile.Save(a.cfg.PointsFile, store.List()); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func newPointsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every click point",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.editPoints(func(*autoclicker.Store) (bool, error) { return false, nil })
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPointTable(store.List()))
			return nil
		},
	}
}

func newPointsAddCmd(a *app) *cobra.Command {
	var (
		interval string
		repeat   string
		disabled bool
	)
	cmd := &cobra.Command{
		Use:   "add X Y",
		Short: "Add a click point",
		Long: `Add a click point at screen coordinates X,Y. The interval is in milliseconds;
values below 100 are raised to 100 and anything unparseable becomes 1000.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parseCoords(args[0], args[1])
			if err != nil {
				return err
			}
			var added autoclicker.ClickPoint
			_, err = a.editPoints(func(store *autoclicker.Store) (bool, error) {
				added = store.Add(x, y, autoclicker.ParseInterval(interval))
				update := autoclicker.PointUpdate{}
				if cmd.Flags().Changed("repeat") {
					r := autoclicker.ParseRepeat(repeat)
					update.Repeat = &r
				}
				if disabled {
					enabled := false
					update.Enabled = &enabled
				}
				if update.Repeat != nil || update.Enabled != nil {
					added, _ = store.Update(added.ID, update)
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added point %d at %s,%s every %s\n",
				added.ID, formatCoord(added.X), formatCoord(added.Y), added.Interval)
			return nil
		},
	}
	cmd.Flags().StringVarP(&interval, "interval", "i", "1000", "interval in milliseconds")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "completed taps before the point retires for a session (default unlimited)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "add the point disabled")
	return cmd
}

func newPointsUpdateCmd(a *app) *cobra.Command {
	var (
		x, y     float64
		interval string
		repeat   string
		enabled  bool
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a click point",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			update := autoclicker.PointUpdate{}
			if flags.Changed("x") {
				update.X = &x
			}
			if flags.Changed("y") {
				update.Y = &y
			}
			if flags.Changed("interval") {
				d := autoclicker.ParseInterval(interval)
				update.Interval = &d
			}
			if flags.Changed("repeat") {
				r := autoclicker.ParseRepeat(repeat)
				update.Repeat = &r
			}
			if flags.Changed("enabled") {
				update.Enabled = &enabled
			}

			var updated autoclicker.ClickPoint
			_, err = a.editPoints(func(store *autoclicker.Store) (bool, error) {
				var ok bool
				updated, ok = store.Update(id, update)
				if !ok {
					return false, fmt.Errorf("no click point with id %d", id)
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPointTable([]autoclicker.ClickPoint{updated}))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Float64Var(&x, "x", 0, "new X coordinate")
	flags.Float64Var(&y, "y", 0, "new Y coordinate")
	flags.StringVarP(&interval, "interval", "i", "", "new interval in milliseconds")
	flags.StringVarP(&repeat, "repeat", "r", "", "new repeat count (-1 = unlimited)")
	flags.BoolVar(&enabled, "enabled", true, "enable or disable the point (--enabled=false)")
	return cmd
}

func newPointsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a click point",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, err = a.editPoints(func(store *autoclicker.Store) (bool, error) {
				if !store.Remove(id) {
					return false, fmt.Errorf("no click point with id %d", id)
				}
				return true, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed point %d\n", id)
			return nil
		},
	}
}

func newPointsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every click point",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed int
			_, err := a.editPoints(func(store *autoclicker.Store) (bool, error) {
				removed = store.Len()
				store.Clear()
				return true, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d point(s)\n", removed)
			return nil
		},
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{fmt.Errorf("%s expects %d argument(s), got %d", cmd.CommandPath(), n, len(args))}
		}
		return nil
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, usageError{fmt.Errorf("invalid point id %q", raw)}
	}
	return id, nil
}

func parseCoords(rawX, rawY string) (float64, float64, error) {
	x, errX := strconv.ParseFloat(rawX, 64)
	y, errY := strconv.ParseFloat(rawY, 64)
	if errX != nil || errY != nil {
		return 0, 0, usageError{fmt.Errorf("invalid coordinates %q %q", rawX, rawY)}
	}
	return x, y, nil
}
