// Package gallery exposes a directory tree as a browsable image gallery.
//
// The package answers four kinds of questions about a root directory: which
// folders sit directly under it or under one of its folders, which image
// files a folder holds, and what bytes a static file contains. Filesystem
// access goes through the FileStorage interface; the filesystem package
// provides the local-disk implementation and the http package exposes the
// service over HTTP.
//
// # Key Components
//
//   - GalleryService: listing and file-read operations
//   - FileStorage: interface for directory enumeration and file reads
//   - ContentTypeByExtension: fixed extension to content-type registry
//   - IsImageFile: image allow-list (.jpg .jpeg .png .gif .bmp .webp)
//
// # Path Handling
//
// Folder names arrive percent-encoded, exactly as they appeared in the request
// URL. The service decodes them once and rejects any folder that resolves
// outside the root with ErrIllegalPath. Image paths inside a named folder are
// returned re-encoded so they can be requested directly:
//
//	images, err := service.ListFolderImages(ctx, "%E6%97%85%E8%A1%8C")
//	// ["%E6%97%85%E8%A1%8C/a.jpg", "%E6%97%85%E8%A1%8C/b%20c.png"]
//
// # Example Usage
//
//	storage, err := filesystem.NewFileStorage(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service := gallery.NewGalleryService(storage, gallery.ServiceConfig{})
//
//	dirs, err := service.ListDirectories(ctx)
package gallery
