package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/loader"
	"github.com/napolitain/buildorder/internal/order"
	"github.com/napolitain/buildorder/internal/planner"
	"github.com/napolitain/buildorder/internal/watch"
)

// errViolations is returned by validate when the order is not legal
var errViolations = errors.New("order has violations")

func (a *app) loadOrder(path string) (*order.Order, error) {
	o, err := loader.LoadOrder(path, a.planner.Catalog())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("order loaded", "path", path, "actions", o.Len())
	return o, nil
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <order>",
		Short: "Simulate an order and list every violation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.loadOrder(args[0])
			if err != nil {
				return err
			}
			result, analysis, err := a.planner.Evaluate(o)
			if err != nil {
				return err
			}
			report := converter.NewReport(result, analysis)
			printReport(cmd.OutOrStdout(), report)
			if len(report.Diagnostics) > 0 {
				return fmt.Errorf("%w: %d", errViolations, len(report.Diagnostics))
			}
			return nil
		},
	}
}

func newTimelineCmd(a *app) *cobra.Command {
	var step int
	cmd := &cobra.Command{
		Use:   "timeline <order>",
		Short: "Print resources, supply and queues over time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if step < 1 {
				return fmt.Errorf("--step must be at least 1, got %d", step)
			}
			o, err := a.loadOrder(args[0])
			if err != nil {
				return err
			}
			result, _, err := a.planner.Evaluate(o)
			if err != nil {
				return err
			}
			printTimeline(cmd.OutOrStdout(), result, step)
			return nil
		},
	}
	cmd.Flags().IntVarP(&step, "step", "s", 10, "seconds between rows")
	return cmd
}

func newQuickestCmd(a *app) *cobra.Command {
	var (
		unit   string
		parent int
		count  int
	)
	cmd := &cobra.Command{
		Use:   "quickest <order>",
		Short: "Find the earliest second a unit can be started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := loader.ReadSave(args[0])
			if err != nil {
				return err
			}
			reply, err := a.planner.Quickest(cmd.Context(), converter.QuickestRequest{
				Order:  save,
				Unit:   unit,
				Parent: parent,
				Count:  count,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !reply.Possible {
				color.New(color.FgRed).Fprintf(out, "✗ %s can never be started in this order\n", unit)
				return nil
			}
			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ %s can start at %s (%ds)\n", unit, formatTime(reply.Time), reply.Time)
			return nil
		},
	}
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "unit to schedule")
	cmd.Flags().IntVarP(&parent, "parent", "p", order.ParentNone, "producing create index (-1 none, -2 starting structure)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "units produced at once")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}

func newActionsCmd(a *app) *cobra.Command {
	var parent int
	cmd := &cobra.Command{
		Use:   "actions <order>",
		Short: "List what a structure can do next and when",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.loadOrder(args[0])
			if err != nil {
				return err
			}
			result, _, err := a.planner.Evaluate(o)
			if err != nil {
				return err
			}

			id, err := planner.ResolveParent(o, parent)
			if err != nil {
				return err
			}
			var factories []order.Factory
			if id == order.None {
				factories = order.PossibleBuildings(o.Catalog())
			} else {
				p, _ := o.Get(id)
				factories = order.PossibleActions(o.Catalog(), p)
			}

			earliest := make([]order.Second, len(factories))
			for i, f := range factories {
				t, err := result.FindQuickestPossibleAction(f, o)
				if err != nil {
					return err
				}
				earliest[i] = t
			}
			printActions(cmd.OutOrStdout(), factories, earliest)
			return nil
		},
	}
	cmd.Flags().IntVarP(&parent, "parent", "p", order.ParentNone, "structure create index (-1 lists placeable buildings, -2 starting structure)")
	return cmd
}

func newCatalogCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the active unit catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loader.EncodeCatalog(a.planner.Catalog(), loader.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(loader.FormatTOML), "output format: toml, yaml or json")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <order>",
		Short: "Re-validate an order every time the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(args[0], a.logger)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			return a.watchLoop(ctx, cmd, w)
		},
	}
}

func (a *app) watchLoop(ctx context.Context, cmd *cobra.Command, w *watch.Watcher) error {
	out := cmd.OutOrStdout()
	info := color.New(color.FgYellow)

	a.revalidate(cmd, w.File)
	info.Fprintf(out, "👀 Watching %s (Ctrl+C to stop)\n", w.File)

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if change.Kind == watch.ChangeRemoved {
				info.Fprintf(out, "\n%s was removed, waiting for it to come back\n", change.File)
				continue
			}
			fmt.Fprintln(out)
			a.revalidate(cmd, change.File)
		}
	}
}

// revalidate prints a fresh report; load failures are reported, not fatal,
// since the file may be mid-edit
func (a *app) revalidate(cmd *cobra.Command, path string) {
	out := cmd.OutOrStdout()
	o, err := a.loadOrder(path)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
		return
	}
	result, analysis, err := a.planner.Evaluate(o)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
		return
	}
	printReport(out, converter.NewReport(result, analysis))
}
