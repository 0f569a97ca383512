package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/gallery/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "gallery",
	Short:   "Browse a directory tree as an image gallery",
	Long: `Gallery is a small HTTP server that exposes a directory tree as a
browsable image gallery. It lists folders and image files as JSON and serves
the files themselves, including the HTML and scripts of the front end.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			configFiles = []string{configFile}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./gallery.yaml)")
	rootCmd.PersistentFlags().String("root", "", "gallery root directory (default: working directory, env: GALLERY_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: GALLERY_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env", "", "environment: dev, prod (env: GALLERY_ENV)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
