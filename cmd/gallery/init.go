package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/gallery/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a gallery.yaml interactively",
	Long: `Ask for the port and gallery root and write them to a config file.

The file is read automatically by later commands started in the same
directory. An existing file is only replaced after confirmation.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringP("output", "o", "gallery.yaml", "config file to write")

	rootCmd.AddCommand(initCmd)
}

// initFile is the subset of the configuration written by init.
type initFile struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	if _, statErr := os.Stat(output); statErr == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", output),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			_, _ = fmt.Fprintln(out, "Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	portPrompt := promptui.Prompt{
		Label:    "Port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(cmd, err)
	}

	rootPrompt := promptui.Prompt{
		Label:    "Gallery root",
		Default:  cfg.Storage.Path,
		Validate: validateRoot,
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return handlePromptError(cmd, err)
	}

	port, _ := strconv.Atoi(portStr)
	if err := writeInitFile(output, port, root); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Wrote %s. Start the server with: gallery serve\n", output)
	return nil
}

func validatePort(input string) error {
	port, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("port must be a number")
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

func validateRoot(input string) error {
	if input == "" {
		return errors.New("gallery root is required")
	}
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", input, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", input)
	}
	return nil
}

// writeInitFile writes port and root as YAML to path, creating parent
// directories as needed.
func writeInitFile(path string, port int, root string) error {
	var f initFile
	f.Server.Port = port
	f.Storage.Path = root

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cleanPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// handlePromptError treats an interrupted or aborted prompt as a cancel.
func handlePromptError(cmd *cobra.Command, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}
