package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newResourceTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource-type",
		Aliases: []string{"resource-types", "rt"},
		Short:   "Inspect the resource type catalog",
	}

	cmd.AddCommand(newResourceTypeListCmd())

	return cmd
}

func newResourceTypeListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List resource types",
		Long: `List the resource types that blueprints can contain.

Examples:
  idpctl resource-type list
  idpctl resource-type list -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			types, err := sess.client.ListResourceTypes(ctx)
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, types)
			}

			rows := make([][]string, 0, len(types))
			for _, rt := range types {
				rows = append(rows, []string{rt.DisplayName, rt.Category, rt.ID.String()})
			}
			return printTable(os.Stdout, []string{"NAME", "CATEGORY", "ID"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func newStackTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stack-type",
		Aliases: []string{"stack-types"},
		Short:   "Inspect the stack type catalog",
	}

	cmd.AddCommand(newStackTypeListCmd())

	return cmd
}

func newStackTypeListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stack types",
		Long: `List stack types and the resource types each one requires.

Examples:
  idpctl stack-type list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			types, err := sess.client.ListStackTypes(ctx)
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, types)
			}

			rows := make([][]string, 0, len(types))
			for _, st := range types {
				rows = append(rows, []string{
					st.Name,
					st.DisplayName,
					truncateString(strings.Join(st.RequiredResourceTypes, ", "), 60),
				})
			}
			return printTable(os.Stdout, []string{"NAME", "DISPLAY NAME", "REQUIRED RESOURCE TYPES"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}
