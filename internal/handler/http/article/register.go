package article

import (
	"net/http"

	artUC "newsdesk/internal/usecase/article"
	"newsdesk/internal/usecase/lifecycle"
)

// Register registers all article routes with the given mux. Content
// operations go through the article service; status transitions and edits go
// through the lifecycle service. Authentication and the role gate are applied
// by the authorization middleware wrapping the mux.
func Register(mux *http.ServeMux, svc *artUC.Service, wf *lifecycle.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("GET /articles/search", SearchHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})

	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("PUT /articles/{id}", UpdateHandler{wf})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})

	mux.Handle("POST /articles/{id}/submit", SubmitHandler{wf})
	mux.Handle("POST /articles/{id}/approve", ApproveHandler{wf})
	mux.Handle("POST /articles/{id}/reject", RejectHandler{wf})
}
