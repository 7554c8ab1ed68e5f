package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	collectionmodels "github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
	selectionmodels "github.com/mamecholeye-lab/Rmam/services/selection/domain/models"
)

// opener opens the services for one command run.
type opener func(ctx context.Context) (*env, error)

type cli struct {
	open      opener
	workspace string
}

func newRootCmd(defaultWorkspace string, open opener) *cobra.Command {
	c := &cli{open: open}

	rootCmd := &cobra.Command{
		Use:           "rmam",
		Short:         "Grouped random picker for named links",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&c.workspace, "workspace", "w", defaultWorkspace, "workspace holding the collection")

	rootCmd.AddCommand(c.importCmd())
	rootCmd.AddCommand(c.showCmd())
	rootCmd.AddCommand(c.groupsCmd())
	rootCmd.AddCommand(c.groupCmd())
	rootCmd.AddCommand(c.assignCmd())
	rootCmd.AddCommand(c.pickCmd())
	rootCmd.AddCommand(c.setsCmd())
	rootCmd.AddCommand(c.statsCmd())
	rootCmd.AddCommand(c.exportCmd())
	rootCmd.AddCommand(c.clearCmd())
	return rootCmd
}

// run opens the services, calls fn and closes them again.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close() //nolint:errcheck
	return fn(cmd.Context(), e)
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Replace the collection with a file or stdin",
		Long: "Reads a JSON array, a JSON object, a saved or exported snapshot,\n" +
			"or one \"name,url,group\" record per line. Without a file, reads stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				res, err := e.collection.Import(ctx, c.workspace, raw)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items (%s)\n", len(res.Items), res.Format)
				if len(res.Groups) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Groups: %s\n", strings.Join(res.Groups, ", "))
				}
				return nil
			})
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return raw, nil
}

func (c *cli) showCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				items, err := e.collection.Filter(ctx, c.workspace, group)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No items. Use 'rmam import' to add some.")
					return nil
				}
				printItems(cmd.OutOrStdout(), items)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", collectionmodels.AllGroups, "only items of this group")
	return cmd
}

func printItems(w io.Writer, items []collectionmodels.Item) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGROUP\tURL")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Name, it.Group, it.URL)
	}
	_ = tw.Flush()
}

func (c *cli) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List groups with item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				snap, err := e.collection.Get(ctx, c.workspace)
				if err != nil {
					return err
				}
				stats, err := e.collection.Stats(ctx, c.workspace)
				if err != nil {
					return err
				}
				counts := make(map[string]int, len(stats.GroupCounts))
				for _, gc := range stats.GroupCounts {
					counts[gc.Group] = gc.Count
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "GROUP\tITEMS")
				fmt.Fprintf(tw, "%s\t%d\n", collectionmodels.DefaultGroup, counts[collectionmodels.DefaultGroup])
				for _, g := range snap.Groups {
					if g == collectionmodels.DefaultGroup {
						continue
					}
					fmt.Fprintf(tw, "%s\t%d\n", g, counts[g])
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create or delete groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create [name]",
		Short: "Register a new, empty group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				groups, err := e.collection.CreateGroup(ctx, c.workspace, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Groups: %s\n", strings.Join(groups, ", "))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a group, moving its items to default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				groups, err := e.collection.DeleteGroup(ctx, c.workspace, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q. Groups: %s\n", args[0], strings.Join(groups, ", "))
				return nil
			})
		},
	})
	return cmd
}

func (c *cli) assignCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "assign [id] [group]",
		Short: "Move an item to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				item, err := e.collection.AssignGroup(ctx, c.workspace, id, args[1], strict)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", item.Name, item.Group)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "require default or a registered group")
	return cmd
}

func (c *cli) pickCmd() *cobra.Command {
	var (
		group string
		count int
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Draw random items without repeats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := selectionmodels.ModeSingle
			if count > 1 {
				mode = selectionmodels.ModeBatch
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				res, err := e.selection.Draw(ctx, c.workspace, selectionmodels.Request{Group: group, Count: count, Mode: mode})
				if err != nil {
					return err
				}
				printItems(cmd.OutOrStdout(), res.Items)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", collectionmodels.AllGroups, "draw from this group")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of distinct items")
	return cmd
}

func (c *cli) setsCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "sets",
		Short: "Draw five independent sets of three",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				res, err := e.selection.Draw(ctx, c.workspace, selectionmodels.Request{Group: group, Mode: selectionmodels.ModeMultiset})
				if err != nil {
					return err
				}
				for i, set := range res.Sets {
					names := make([]string, len(set))
					for j, it := range set {
						names[j] = it.Name
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Set %d: %s\n", i+1, strings.Join(names, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", collectionmodels.AllGroups, "draw from this group")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals and per-group counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				stats, err := e.collection.Stats(ctx, c.workspace)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:  %d\n", stats.Total)
				fmt.Fprintf(out, "Active: %d\n", stats.Active)
				fmt.Fprintf(out, "Groups: %d\n", stats.Groups)
				for _, gc := range stats.GroupCounts {
					fmt.Fprintf(out, "  %s: %d\n", gc.Group, gc.Count)
				}
				return nil
			})
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, e *env) error {
				exp, err := e.collection.Export(ctx, c.workspace)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(exp, "", "  ")
				if err != nil {
					return fmt.Errorf("encode export: %w", err)
				}
				data = append(data, '\n')

				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d items to %s\n", exp.Stats.Total, output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func (c *cli) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item and group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("clear deletes the whole collection; pass --yes to confirm")
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				if err := e.collection.Clear(ctx, c.workspace); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Collection cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing")
	return cmd
}
