// Package http serves the gallery over HTTP.
//
// # Routes
//
// Every route accepts any method. Rules are checked in this order and the
// first match wins:
//
//	/                          default document (000.html)
//	/api/directories           JSON array of directories under the root
//	/api/subdirectories/{dir}  JSON array of directories under dir
//	/api/images/{dir}          JSON array of "{dir}/{image}" paths, both encoded
//	/api/images                JSON array of image names under the root
//	/{path}                    raw file content
//
// Listings are written as indented JSON with content type
// "application/json; charset=utf-8". A failed listing, including a folder
// that resolves outside the root, is answered with 500 and a plain-text body
// "Error reading directory: <error>". A failed file read is answered with 404
// and "File ./<path> not found!".
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{}, service)
//	stdhttp.ListenAndServe(":3000", handler.Router())
//
// # Middleware
//
// Router installs panic recovery, RequestLogger and, when enabled in
// HandlerConfig, CORS.
package http
