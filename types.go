package gallery

// Entry is a single immediate child of a folder.
type Entry struct {
	Name  string
	IsDir bool
}

// ServiceConfig holds configuration options for GalleryService.
type ServiceConfig struct {
	// ConfineStatic applies the root containment check to static file reads
	// as well as to folder listings. Off by default.
	ConfineStatic bool
}
