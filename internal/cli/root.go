// Package cli implements the idpctl CLI commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angryss/idpctl/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "idpctl",
	Short: "Administer blueprints and stacks on the internal developer platform",
	Long: `idpctl is the admin console for the internal developer platform.

It manages blueprints (reusable infrastructure templates), the resources
they contain, and the stacks provisioned from them, talking to the
platform API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.idpctl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("api-endpoint", "", "Platform API base URL")
	rootCmd.PersistentFlags().String("api-key", "", "Platform API key")

	// Bind to viper
	_ = viper.BindPFlag(ConfigKeyAPIEndpoint, rootCmd.PersistentFlags().Lookup("api-endpoint"))
	_ = viper.BindPFlag(ConfigKeyAPIKey, rootCmd.PersistentFlags().Lookup("api-key"))
	viper.SetEnvPrefix("IDPCTL")
	viper.AutomaticEnv()

	// Add subcommands
	rootCmd.AddCommand(newProviderCmd())
	rootCmd.AddCommand(newResourceTypeCmd())
	rootCmd.AddCommand(newStackTypeCmd())
	rootCmd.AddCommand(newBlueprintCmd())
	rootCmd.AddCommand(newStackCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.idpctl")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Read config file if it exists
	_ = viper.ReadInConfig()
}
