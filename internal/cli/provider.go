package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "provider",
		Aliases: []string{"providers", "cloud-provider"},
		Short:   "Inspect the cloud provider catalog",
	}

	cmd.AddCommand(newProviderListCmd())

	return cmd
}

func newProviderListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List cloud providers",
		Long: `List the cloud providers registered on the platform.

Examples:
  idpctl provider list
  idpctl provider list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, sess.providers)
			}

			rows := make([][]string, 0, len(sess.providers))
			for _, p := range sess.providers {
				rows = append(rows, []string{p.Tag, p.DisplayName, p.ID.String()})
			}
			return printTable(os.Stdout, []string{"TAG", "NAME", "ID"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}
