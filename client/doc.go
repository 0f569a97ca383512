// Package client talks to a running gallery server over HTTP.
//
// It mirrors the listing operations of the server API and downloads the
// files it serves:
//
//	c, err := client.New("http://localhost:3000")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	folders, err := c.ListDirectories(ctx)
//	images, err := c.ListFolderImages(ctx, gallery.EncodeURIComponent("Cats"))
//
//	result, _, err := c.Download(ctx, client.DownloadOptions{
//		RemotePath: "Cats/a.jpg",
//		LocalPath:  "./a.jpg",
//	})
package client
