package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angryss/idpctl/pkg/blueprint"
	"github.com/angryss/idpctl/pkg/catalog"
	"github.com/angryss/idpctl/pkg/compat"
)

func newStackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stack",
		Aliases: []string{"stacks"},
		Short:   "Manage provisioned stacks",
		Long:    `Commands for listing stacks and migrating them between blueprints.`,
	}

	cmd.AddCommand(newStackListCmd())
	cmd.AddCommand(newStackTargetsCmd())
	cmd.AddCommand(newStackMigrateCmd())

	return cmd
}

func newStackListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stacks",
		Long: `List all provisioned stacks.

Examples:
  idpctl stack list
  idpctl stack list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			stacks, err := sess.client.ListStacks(ctx)
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, stacks)
			}

			rows := make([][]string, 0, len(stacks))
			for _, s := range stacks {
				rows = append(rows, []string{s.Name, s.StackType, s.CloudName, truncateString(s.Description, 40)})
			}
			return printTable(os.Stdout, []string{"NAME", "TYPE", "CLOUD", "DESCRIPTION"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func newStackTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets <name-or-id>",
		Short: "List blueprints a stack can migrate to",
		Long: `List the blueprints that satisfy a stack's resource type requirements,
in listing order.

A blueprint qualifies when it contains at least one resource of every
resource type the stack's type requires. Type names match
case-insensitively.

Examples:
  idpctl stack targets orders-prod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			stack, err := sess.client.GetStack(ctx, args[0])
			if err != nil {
				return err
			}

			targets, _, err := compatibleTargets(ctx, sess, stack)
			if err != nil {
				return err
			}

			if len(targets) == 0 {
				fmt.Printf("No blueprints satisfy stack type %q.\n", stack.StackType)
				return nil
			}

			rows := make([][]string, 0, len(targets))
			for _, bp := range targets {
				rows = append(rows, []string{bp.Name, truncateString(bp.Description, 40), fmt.Sprintf("%d", len(bp.Resources))})
			}
			return printTable(os.Stdout, []string{"NAME", "DESCRIPTION", "RESOURCES"}, rows)
		},
	}

	return cmd
}

func newStackMigrateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "migrate <stack> <blueprint>",
		Short: "Migrate a stack to a different blueprint",
		Long: `Re-point a stack at a different blueprint.

The target must satisfy the stack type's resource requirements. The check
runs client-side first so obviously incompatible targets fail fast; the
server validates again on submission. Use --force to skip the client-side
check.

Examples:
  idpctl stack migrate orders-prod platform-core`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			stack, err := sess.client.GetStack(ctx, args[0])
			if err != nil {
				return err
			}
			target, err := sess.client.GetBlueprint(ctx, args[1])
			if err != nil {
				return err
			}

			if !force {
				_, required, err := compatibleTargets(ctx, sess, stack)
				if err != nil {
					return err
				}

				types, err := sess.client.ListResourceTypes(ctx)
				if err != nil {
					return err
				}
				engine := compat.NewEngine(types)
				if !engine.IsCompatible(target, required) {
					return fmt.Errorf(
						"blueprint %q does not satisfy stack type %q (requires: %v)\n\n"+
							"Run 'idpctl stack targets %s' to list compatible blueprints.",
						target.Name, stack.StackType, required, stack.Name,
					)
				}
			}

			migrated, err := sess.client.MigrateStack(ctx, stack.ID, target.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Migrated stack %q to blueprint %q\n", migrated.Name, target.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the client-side compatibility check")

	return cmd
}

// compatibleTargets returns the blueprints compatible with the stack's type,
// along with the stack type's required resource type names.
func compatibleTargets(ctx context.Context, sess *session, stack *blueprint.Stack) ([]blueprint.Blueprint, []string, error) {
	stackTypes, err := sess.client.ListStackTypes(ctx)
	if err != nil {
		return nil, nil, err
	}

	var stackType *catalog.StackType
	for i := range stackTypes {
		if stackTypes[i].Name == stack.StackType {
			stackType = &stackTypes[i]
			break
		}
	}
	if stackType == nil {
		return nil, nil, fmt.Errorf("stack type %q not found in catalog", stack.StackType)
	}

	types, err := sess.client.ListResourceTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	blueprints, err := sess.client.ListBlueprints(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine := compat.NewEngine(types)
	return engine.CompatibleTargets(blueprints, stackType.RequiredResourceTypes), stackType.RequiredResourceTypes, nil
}
