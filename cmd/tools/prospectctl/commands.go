// cmd/tools/prospectctl/commands.go
package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"prospect-dashboard/internal/prospects"
	"prospect-dashboard/pkg/registry"
)

func newGenerateCmd(gf *generatorFlags) *cobra.Command {
	var (
		out  string
		full bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a snapshot and print its summary or records as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, snap, err := gf.service(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(out, cmd.OutOrStdout(), func(w io.Writer) error {
				if full {
					return writeJSON(w, snap)
				}
				return writeJSON(w, snap.Info())
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&full, "full", false, "include every prospect record")
	return cmd
}

func newStatsCmd(gf *generatorFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the stats summary of a generated snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, snap, err := gf.service(cmd.Context())
			if err != nil {
				return err
			}
			_, filtered, err := svc.Query(cmd.Context(), snap.ID, ff.criteria())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), prospects.Summarize(filtered))
		},
	}
	addFilterFlags(cmd, ff)
	return cmd
}

func newExportCmd(gf *generatorFlags) *cobra.Command {
	ff := &filterFlags{}
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered prospects of a generated snapshot as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, snap, err := gf.service(cmd.Context())
			if err != nil {
				return err
			}
			export, err := svc.Export(cmd.Context(), snap.ID, ff.criteria())
			if err != nil {
				return err
			}
			err = writeOutput(out, cmd.OutOrStdout(), func(w io.Writer) error {
				_, err := io.WriteString(w, export.CSV)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), export)
			return nil
		},
	}
	addFilterFlags(cmd, ff)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newRegistryCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "activity registry file")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Check task types, schemas and timeouts of the activity registry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				path = args[0]
			}
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			problems := reg.Validate()
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d problems", path, len(problems))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d activities OK (version %s)\n", path, len(reg.Activities), reg.Version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered task types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tSTATUS\tTIMEOUT\tRETRIES")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Update status, version, displayName, description, timeout or retries of an activity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.SetField(args[0], args[1], args[2], time.Now()); err != nil {
				return err
			}
			if problems := reg.Validate(); len(problems) > 0 {
				return problems[0]
			}
			if err := reg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s %s=%s\n", args[0], args[1], args[2])
			return nil
		},
	})
	return cmd
}
