package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/angryss/idpctl/pkg/blueprint"
	"github.com/angryss/idpctl/pkg/cascade"
	"github.com/angryss/idpctl/pkg/errors"
	"github.com/angryss/idpctl/pkg/form"
	"github.com/angryss/idpctl/pkg/schema"
)

func newBlueprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blueprint",
		Aliases: []string{"blueprints", "bp"},
		Short:   "Manage blueprints",
		Long:    `Commands for listing, inspecting, and editing blueprints.`,
	}

	cmd.AddCommand(newBlueprintListCmd())
	cmd.AddCommand(newBlueprintGetCmd())
	cmd.AddCommand(newBlueprintApplyCmd())
	cmd.AddCommand(newBlueprintSetProvidersCmd())

	return cmd
}

func newBlueprintListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List blueprints",
		Long: `List all blueprints.

Examples:
  idpctl blueprint list
  idpctl blueprint list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			blueprints, err := sess.client.ListBlueprints(ctx)
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, blueprints)
			}

			rows := make([][]string, 0, len(blueprints))
			for _, bp := range blueprints {
				tags := make([]string, 0, len(bp.SupportedCloudProviderIDs))
				for _, id := range bp.SupportedCloudProviderIDs {
					tag, err := sess.resolver.ResolveTag(id)
					if err != nil {
						tag = id.String()
					}
					tags = append(tags, tag)
				}
				rows = append(rows, []string{
					bp.Name,
					truncateString(bp.Description, 40),
					strings.Join(tags, ", "),
					fmt.Sprintf("%d", len(bp.Resources)),
				})
			}
			return printTable(os.Stdout, []string{"NAME", "DESCRIPTION", "CLOUD PROVIDERS", "RESOURCES"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func newBlueprintGetCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "get <name-or-id>",
		Short: "Show one blueprint",
		Long: `Show a blueprint's providers and resources.

Examples:
  idpctl blueprint get platform-core
  idpctl blueprint get 3e9c2a9e-9a0f-4a3e-9a51-0a1b2c3d4e5f -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			bp, err := sess.client.GetBlueprint(ctx, args[0])
			if err != nil {
				return err
			}

			if outputFormat != "table" {
				return printStructured(os.Stdout, outputFormat, bp)
			}

			types, err := sess.client.ListResourceTypes(ctx)
			if err != nil {
				return err
			}
			typeNames := make(map[uuid.UUID]string, len(types))
			for _, rt := range types {
				typeNames[rt.ID] = rt.DisplayName
			}

			fmt.Printf("Name:        %s\n", bp.Name)
			if bp.Description != "" {
				fmt.Printf("Description: %s\n", bp.Description)
			}
			providerNames := make([]string, 0, len(bp.SupportedCloudProviderIDs))
			for _, id := range bp.SupportedCloudProviderIDs {
				providerNames = append(providerNames, sess.providerName(id))
			}
			fmt.Printf("Providers:   %s\n", strings.Join(providerNames, ", "))
			fmt.Println()

			if len(bp.Resources) == 0 {
				fmt.Println("No resources.")
				return nil
			}

			rows := make([][]string, 0, len(bp.Resources))
			for _, r := range bp.Resources {
				typeName := typeNames[r.ResourceTypeID]
				if typeName == "" {
					typeName = r.ResourceTypeID.String()
				}
				rows = append(rows, []string{r.Name, typeName, sess.providerName(r.CloudProviderID)})
			}
			return printTable(os.Stdout, []string{"NAME", "TYPE", "CLOUD PROVIDER"}, rows)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")

	return cmd
}

func newBlueprintApplyCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update a blueprint from a file",
		Long: `Create or update a blueprint from a YAML file.

If a blueprint with the file's name already exists, it is updated;
otherwise a new one is created. Each resource configuration is validated
against its property schema before anything is sent.

Examples:
  idpctl blueprint apply -f blueprint.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			f, err := blueprint.LoadFile(filePath)
			if err != nil {
				return err
			}

			types, err := sess.client.ListResourceTypes(ctx)
			if err != nil {
				return err
			}

			draft, err := f.Resolve(sess.resolver, types)
			if err != nil {
				return err
			}

			// Adopt the server-side identity when the blueprint already exists.
			if existing, err := sess.client.GetBlueprint(ctx, draft.Name); err == nil {
				draft.ID = existing.ID
			} else if !errors.Is(err, errors.ErrCodeNotFound) {
				return err
			}

			if err := validateResourceConfigurations(ctx, sess, draft); err != nil {
				return err
			}

			orch := blueprint.NewOrchestrator(blueprint.Options{
				Schemas:   schema.NewProvider(sess.client),
				Persister: sess.client,
				Confirmer: autoApproveConfirmer{},
				Providers: sess.providers,
				Existing:  draft,
			})

			saved, err := orch.Submit(ctx)
			if err != nil {
				return err
			}

			if draft.ID == uuid.Nil {
				fmt.Printf("Created blueprint %q (%s)\n", saved.Name, saved.ID)
			} else {
				fmt.Printf("Updated blueprint %q (%s)\n", saved.Name, saved.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Blueprint file to apply (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// validateResourceConfigurations checks every resource configuration in the
// draft against its property schema and reports all violations at once.
func validateResourceConfigurations(ctx context.Context, sess *session, draft *blueprint.Blueprint) error {
	provider := schema.NewProvider(sess.client)

	var violations []string
	for _, r := range draft.Resources {
		schemas, err := provider.Fetch(ctx, r.ResourceTypeID, r.CloudProviderID)
		if err != nil {
			return err
		}
		for _, v := range form.ValidateConfiguration(schemas, r.Configuration) {
			violations = append(violations, fmt.Sprintf("resource %s: %s: %s", r.Name, v.Property, v.Message))
		}
	}
	if len(violations) > 0 {
		return errors.ValidationError("blueprint file has invalid resource configurations", violations)
	}
	return nil
}

func newBlueprintSetProvidersCmd() *cobra.Command {
	var autoApprove bool

	cmd := &cobra.Command{
		Use:   "set-providers <name-or-id> <provider-tag>...",
		Short: "Replace a blueprint's supported cloud providers",
		Long: `Replace the set of cloud providers a blueprint supports.

Removing a provider deletes every resource that runs on it. The affected
resources are listed and the change must be confirmed before anything is
persisted; growing the set never prompts.

Examples:
  idpctl blueprint set-providers platform-core aws azure
  idpctl blueprint set-providers platform-core aws --auto-approve`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sess, err := newSession(ctx)
			if err != nil {
				return err
			}

			bp, err := sess.client.GetBlueprint(ctx, args[0])
			if err != nil {
				return err
			}

			newSet := make([]uuid.UUID, 0, len(args)-1)
			for _, tag := range args[1:] {
				id, err := sess.resolver.ResolveID(tag)
				if err != nil {
					return err
				}
				newSet = append(newSet, id)
			}

			var confirmer blueprint.Confirmer = newPromptConfirmer()
			if autoApprove {
				confirmer = autoApproveConfirmer{}
			}

			orch := blueprint.NewOrchestrator(blueprint.Options{
				Schemas:   schema.NewProvider(sess.client),
				Persister: sess.client,
				Confirmer: confirmer,
				Providers: sess.providers,
				Existing:  bp,
			})

			state, err := orch.ProposeCloudProviderChange(ctx, newSet)
			if err != nil {
				return err
			}
			if state == cascade.StateCancelled {
				fmt.Println("Change cancelled. The blueprint was not modified.")
				return nil
			}

			saved, err := orch.Submit(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Updated blueprint %q: %d cloud providers, %d resources\n",
				saved.Name, len(saved.SupportedCloudProviderIDs), len(saved.Resources))
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Skip confirmation prompt")

	return cmd
}
