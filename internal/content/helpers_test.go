package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecontent/internal/contract"
)

// apiHandler mounts the contract under /api, as the server does.
func apiHandler(src contract.Source) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		contract.Register(r, src, nil)
	})
	return r
}
