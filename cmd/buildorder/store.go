package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/buildorder/internal/loader"
	"github.com/napolitain/buildorder/internal/store"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep named orders in the local SQLite database",
	}
	cmd.AddCommand(
		newStoreSaveCmd(a),
		newStoreListCmd(a),
		newStoreShowCmd(a),
		newStoreDeleteCmd(a),
	)
	return cmd
}

func (a *app) withStore(cmd *cobra.Command, fn func(s *store.SQLiteStore) error) error {
	s, err := store.Open(cmd.Context(), a.cfg.DB, a.logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func newStoreSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <order>",
		Short: "Store an order file under a name, replacing any previous one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			// loading checks unit names against the catalog
			o, err := a.loadOrder(path)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(s *store.SQLiteStore) error {
				id, err := s.Put(cmd.Context(), name, o.Serialize())
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Saved %q as %s\n", name, id)
				return nil
			})
		},
	}
}

func newStoreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored orders, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.SQLiteStore) error {
				list, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				table := tablewriter.NewTable(cmd.OutOrStdout(),
					tablewriter.WithHeader([]string{"ID", "Name", "Creates", "Updated"}),
				)
				for _, e := range list {
					_ = table.Append([]string{
						e.ID,
						e.Name,
						fmt.Sprintf("%d", e.Creates),
						e.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				return table.Render()
			})
		},
	}
}

func newStoreShowCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print a stored order, or write it to a file with --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.SQLiteStore) error {
				e, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out != "" {
					if err := loader.WriteSave(out, e.Save); err != nil {
						return err
					}
					color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %q to %s\n", e.Name, out)
					return nil
				}
				data, err := loader.EncodeSave(e.Save, loader.FormatJSON)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file (.json or .pb) instead of stdout")
	return cmd
}

func newStoreDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a stored order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.SQLiteStore) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
