package server

import (
	"net/http"
	"os"
)

// FileServerHandler serves the built client from dir.
func FileServerHandler(dir string) http.Handler {
	return http.FileServer(http.FS(os.DirFS(dir)))
}
