// Package config provides configuration loading and validation for the gallery server.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (GALLERY_ prefix)
//  4. CLI flags
//
// Without an explicit file, ./gallery.yaml is read if it exists.
//
// # Usage
//
//	cfg, err := config.Load([]string{"gallery.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with GALLERY_ prefix:
//   - server.port → GALLERY_SERVER_PORT
//   - storage.path → GALLERY_STORAGE_PATH
//   - log.level → GALLERY_LOG_LEVEL
//
// # Defaults
//
// The server listens on port 3000, serves 000.html for "/", and uses the
// working directory as the gallery root. CORS is off and static reads are not
// confined to the root.
package config
