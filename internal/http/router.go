package http

import (
	"net/http"
	"strings"
	"time"

	"estagio/internal/domain/user"
	"estagio/internal/http/handlers"
	"estagio/internal/http/metrics"
	httpmw "estagio/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	PostingHandler      *handlers.PostingHandler
	ApplicationHandler  *handlers.ApplicationHandler
	DocumentHandler     *handlers.DocumentHandler
	NotificationHandler *handlers.NotificationHandler
	MetricsHandler      *handlers.MetricsHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20
)

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Document uploads carry multipart bodies well past the JSON cap.
	bodyLimit := int64(maxBodyBytes)
	if req.Method == http.MethodPost && req.URL.Path == "/api/documentos/meus" {
		bodyLimit = maxUploadBytes
	}
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(bodyLimit), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/register/aluno":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/auth/login":
			r.deps.AuthHandler.Login(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/usuarios") || strings.HasPrefix(path, "/api/vagas") || strings.HasPrefix(path, "/api/candidaturas") || strings.HasPrefix(path, "/api/documentos") || strings.HasPrefix(path, "/api/notificacoes") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	asStudent := httpmw.RequireRole(user.RoleStudent)
	asTechnician := httpmw.RequireRole(user.RoleTechnician)

	switch {
	case req.Method == http.MethodGet && path == "/api/usuarios/me":
		r.deps.UserHandler.Me(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/usuarios/me":
		r.deps.UserHandler.UpdateMe(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/usuarios/me/configuracoes":
		r.deps.UserHandler.UpdateSettings(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/usuarios/alunos":
		asTechnician(http.HandlerFunc(r.deps.UserHandler.ListStudents)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/usuarios/alunos/"):
		asTechnician(http.HandlerFunc(r.deps.UserHandler.GetStudent)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/api/vagas":
		r.deps.PostingHandler.ListOpen(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/vagas":
		asTechnician(http.HandlerFunc(r.deps.PostingHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/vagas/minhas":
		asTechnician(http.HandlerFunc(r.deps.PostingHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/vagas/") && strings.HasSuffix(path, "/candidaturas"):
		asTechnician(http.HandlerFunc(r.deps.ApplicationHandler.ListForPosting)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/vagas/"):
		r.deps.PostingHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/vagas/"):
		asTechnician(http.HandlerFunc(r.deps.PostingHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/vagas/"):
		asTechnician(http.HandlerFunc(r.deps.PostingHandler.Delete)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/candidaturas":
		asStudent(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/candidaturas":
		asStudent(http.HandlerFunc(r.deps.ApplicationHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/candidaturas/vaga/") && strings.HasSuffix(path, "/minha"):
		asStudent(http.HandlerFunc(r.deps.ApplicationHandler.GetMineForPosting)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/candidaturas/") && strings.HasSuffix(path, "/status"):
		asTechnician(http.HandlerFunc(r.deps.ApplicationHandler.SetStatus)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/documentos/meus":
		asStudent(http.HandlerFunc(r.deps.DocumentHandler.Upload)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/documentos/meus":
		asStudent(http.HandlerFunc(r.deps.DocumentHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/documentos/download/"):
		r.deps.DocumentHandler.Download(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/documentos/"):
		asStudent(http.HandlerFunc(r.deps.DocumentHandler.Delete)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/api/notificacoes/enviar":
		asTechnician(http.HandlerFunc(r.deps.NotificationHandler.Send)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/notificacoes/usuario/me":
		asStudent(http.HandlerFunc(r.deps.NotificationHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/notificacoes/nao-lidas":
		asStudent(http.HandlerFunc(r.deps.NotificationHandler.ListUnread)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/notificacoes/marcar-como-lidas":
		asStudent(http.HandlerFunc(r.deps.NotificationHandler.MarkAllRead)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/notificacoes/") && strings.HasSuffix(path, "/lida"):
		asStudent(http.HandlerFunc(r.deps.NotificationHandler.MarkRead)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/notificacoes/"):
		asStudent(http.HandlerFunc(r.deps.NotificationHandler.Delete)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
