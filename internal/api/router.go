package api

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/ItsNotGoodName/thriveremoteos/internal/build"
	"github.com/ItsNotGoodName/thriveremoteos/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewConfig() huma.Config {
	config := huma.DefaultConfig("ThriveRemoteOS", build.Current.Version)
	config.Info.Description = "Window manager of the ThriveRemoteOS browser desktop."
	return config
}

// NewRouter returns the chi router serving the static desktop from static and
// the huma API mounted on it.
func NewRouter(static fs.FS, root string) (chi.Router, huma.API) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)
	r.Use(chiext.StaticEmbedFS(chiext.StaticFSConfig{
		FileSystem: static,
		Root:       root,
		Redirect: func(r *http.Request) bool {
			return r.Method == http.MethodGet && !strings.HasPrefix(r.URL.Path, "/api") && !isDocsPath(r.URL.Path)
		},
	}))

	return r, humachi.New(r, NewConfig())
}

func isDocsPath(path string) bool {
	return path == "/docs" || strings.HasPrefix(path, "/openapi") || strings.HasPrefix(path, "/schemas")
}
