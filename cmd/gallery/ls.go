package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/gallery"
	"github.com/sagarc03/gallery/client"
	"github.com/sagarc03/gallery/config"
	"github.com/sagarc03/gallery/filesystem"
)

// lister is implemented by the local service and by the HTTP client. Folder
// arguments are URI encoded in both.
type lister interface {
	ListDirectories(ctx context.Context) ([]string, error)
	ListSubdirectories(ctx context.Context, folder string) ([]string, error)
	ListImages(ctx context.Context) ([]string, error)
	ListFolderImages(ctx context.Context, folder string) ([]string, error)
}

var lsCmd = &cobra.Command{
	Use:   "ls [folder]",
	Short: "List folders or images without starting the server",
	Long: `List the folders (default) or image files (--images) directly under the
gallery root, or under folder when given. The output matches what the HTTP API
returns for the same request. With --server the listing is requested from a
running gallery instead.

Examples:
  gallery ls
  gallery ls Cats --images
  gallery ls 旅行 --json
  gallery ls --server http://localhost:3000 Cats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().Bool("images", false, "list image files instead of folders")
	lsCmd.Flags().Bool("json", false, "print the listing as JSON")
	lsCmd.Flags().BoolP("quiet", "q", false, "omit the summary line")
	lsCmd.Flags().String("server", "", "list from a running server at this URL (env: GALLERY_CLIENT_SERVER)")

	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	images, _ := cmd.Flags().GetBool("images")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")

	source, err := newLister(cfg)
	if err != nil {
		return err
	}

	folder := ""
	if len(args) == 1 {
		folder = args[0]
	}

	kind := ListDirectories
	if images {
		kind = ListImages
	}

	items, err := listFolder(cmd.Context(), source, kind, folder)

	formatter := NewFormatter(jsonOutput, quiet)
	if err != nil {
		_ = formatter.FormatError(cmd.ErrOrStderr(), err)
		return err
	}

	return formatter.FormatList(cmd.OutOrStdout(), &ListResult{
		Kind:   kind,
		Folder: folder,
		Items:  items,
	})
}

// newLister returns an HTTP client when a server is configured and a service
// over the local gallery root otherwise.
func newLister(cfg *config.Config) (lister, error) {
	if cfg.Client.Server != "" {
		return newClient(cfg)
	}

	storage, err := filesystem.NewFileStorage(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	return gallery.NewGalleryService(storage, gallery.ServiceConfig{}), nil
}

func newClient(cfg *config.Config) (*client.Client, error) {
	var opts []client.Option
	if cfg.Client.Timeout > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.Client.Timeout)*time.Second))
	}
	return client.New(cfg.Client.Server, opts...)
}

// listFolder runs the listing the HTTP API would run for folder. An empty
// folder selects the root variant.
func listFolder(ctx context.Context, service lister, kind ListKind, folder string) ([]string, error) {
	encoded := gallery.EncodeURIComponent(folder)

	switch {
	case kind == ListImages && folder == "":
		return service.ListImages(ctx)
	case kind == ListImages:
		return service.ListFolderImages(ctx, encoded)
	case folder == "":
		return service.ListDirectories(ctx)
	default:
		return service.ListSubdirectories(ctx, encoded)
	}
}
