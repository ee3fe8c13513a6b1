package cmd

import (
	"github.com/spf13/cobra"
	"techscreen-backend/config"
)

var rootCmd = &cobra.Command{
	Use:   "techscreen",
	Short: "Technical interview generation service",
	Long:  "techscreen enhances job descriptions and generates structured technical interviews with an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default config.yml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokenCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
