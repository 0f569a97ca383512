package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sagarc03/gallery/client"
	"github.com/sagarc03/gallery/config"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <remote-path> [local-path]",
	Short: "Download a file from a running gallery",
	Long: `Download a file served by a running gallery. remote-path is the plain path
below the gallery root; it is encoded before it is sent.

The server defaults to http://localhost:<server.port> and can be changed with
--server or GALLERY_CLIENT_SERVER.

Examples:
  gallery fetch Cats/a.jpg
  gallery fetch "旅行/海边 1.webp" ./sea.webp
  gallery fetch --stdout 000.html | head`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("output", "o", "", "output file path")
	fetchCmd.Flags().Bool("stdout", false, "write to stdout")
	fetchCmd.Flags().Bool("json", false, "print the result as JSON")
	fetchCmd.Flags().String("server", "", "gallery server URL (env: GALLERY_CLIENT_SERVER)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	localPath := ""
	if len(args) > 1 {
		localPath = args[1]
	}
	if output != "" {
		localPath = output
	}
	if toStdout {
		localPath = "-"
	}

	if cfg.Client.Server == "" {
		cfg.Client.Server = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	formatter := NewFormatter(jsonOutput, false)

	result, reader, err := c.Download(cmd.Context(), client.DownloadOptions{
		RemotePath: args[0],
		LocalPath:  localPath,
	})
	if err != nil {
		_ = formatter.FormatError(cmd.ErrOrStderr(), err)
		return err
	}

	if reader != nil {
		defer func() { _ = reader.Close() }()
		if _, err := io.Copy(cmd.OutOrStdout(), reader); err != nil {
			return err
		}
		// Metadata goes to stderr so it does not mix with the content.
		if jsonOutput {
			return formatter.FormatDownload(cmd.ErrOrStderr(), result)
		}
		return nil
	}

	return formatter.FormatDownload(cmd.OutOrStdout(), result)
}
