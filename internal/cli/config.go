package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// ConfigKeyAPIEndpoint is the viper/config key for the platform API base URL.
	ConfigKeyAPIEndpoint = "api_endpoint"

	// ConfigKeyAPIKey is the viper/config key for the platform API key.
	ConfigKeyAPIKey = "api_key"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  `Get and set idpctl CLI configuration values stored in ~/.idpctl/config.yaml.`,
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigListCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in ~/.idpctl/config.yaml.

Available keys:
  api-endpoint    The platform API base URL.
  api-key         The platform API key.

Examples:
  idpctl config set api-endpoint https://idp.example.com/api/v1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			// Normalize key names: allow dashes in CLI, store with underscores
			viperKey := normalizeConfigKey(key)

			switch viperKey {
			case ConfigKeyAPIEndpoint, ConfigKeyAPIKey:
				// valid
			default:
				return fmt.Errorf("unknown configuration key %q\n\nAvailable keys:\n  api-endpoint\n  api-key", key)
			}

			viper.Set(viperKey, value)
			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Set %s\n", key)
			return nil
		},
	}

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value from ~/.idpctl/config.yaml.

Examples:
  idpctl config get api-endpoint`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			viperKey := normalizeConfigKey(key)

			value := viper.GetString(viperKey)
			switch {
			case value == "":
				fmt.Printf("%s is not set\n", key)
			case viperKey == ConfigKeyAPIKey:
				fmt.Println(maskSecret(value))
			default:
				fmt.Println(value)
			}
			return nil
		},
	}

	return cmd
}

func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long:  `List all configuration values from ~/.idpctl/config.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := viper.GetString(ConfigKeyAPIEndpoint)
			key := viper.GetString(ConfigKeyAPIKey)

			fmt.Println("Configuration:")
			if endpoint == "" && key == "" {
				fmt.Println("  (no values set)")
				return nil
			}
			if endpoint != "" {
				fmt.Printf("  api-endpoint = %s\n", endpoint)
			}
			if key != "" {
				fmt.Printf("  api-key = %s\n", maskSecret(key))
			}

			return nil
		},
	}

	return cmd
}

// writeConfig writes the current viper config to the config file.
func writeConfig() error {
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir := filepath.Join(home, ".idpctl")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		configPath = filepath.Join(configDir, "config.yaml")
	}

	return viper.WriteConfigAs(configPath)
}

// normalizeConfigKey converts CLI-style keys (with dashes) to viper-style keys (with underscores).
func normalizeConfigKey(key string) string {
	switch key {
	case "api-endpoint":
		return ConfigKeyAPIEndpoint
	case "api-key":
		return ConfigKeyAPIKey
	default:
		return key
	}
}

// maskSecret hides all but the last four characters of a secret.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
