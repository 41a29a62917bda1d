// Package httpapi exposes the reading tutor as a JSON API: login, quiz
// start and submit for students, and user and progress administration for
// admins.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
)

// Accounts is the credential store used by the API.
type Accounts interface {
	Find(ctx context.Context, email string) (*accounts.User, error)
	Verify(ctx context.Context, email, password string) (*accounts.User, error)
	Create(ctx context.Context, email string, role accounts.Role) (string, error)
	SetPassword(ctx context.Context, email, password string) error
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]accounts.User, error)
}

// Quizzes runs quiz attempts.
type Quizzes interface {
	Start(ctx context.Context, email string, level reading.Level) (*quiz.Quiz, error)
	Submit(ctx context.Context, id, email string, answers []string) (*quiz.Outcome, error)
}

// Progress reads the progress log.
type Progress interface {
	ReadAll(ctx context.Context) ([]progress.Record, error)
	ForUser(ctx context.Context, email string) ([]progress.Record, error)
	Summary(ctx context.Context) ([]progress.UserSummary, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	Language    string
	// GenerateTimeout bounds quiz generation. Zero means three minutes.
	GenerateTimeout time.Duration
}

// Server holds the API's dependencies.
type Server struct {
	accounts Accounts
	quizzes  Quizzes
	progress Progress
	tokens   *TokenIssuer
	logger   *zap.Logger
	opts     Options
}

// New creates a Server. A nil logger is replaced with a no-op logger.
func New(acc Accounts, qz Quizzes, prog Progress, tokens *TokenIssuer, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Language == "" {
		opts.Language = "es"
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 3 * time.Minute
	}
	return &Server{
		accounts: acc,
		quizzes:  qz,
		progress: prog,
		tokens:   tokens,
		logger:   logger,
		opts:     opts,
	}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/levels", s.handleLevels)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authenticate)

		pr.With(middleware.Timeout(s.opts.GenerateTimeout)).Post("/quizzes", s.handleStartQuiz)
		pr.Post("/quizzes/{id}/submit", s.handleSubmitQuiz)
		pr.Get("/progress/me", s.handleMyProgress)

		pr.Group(func(ar chi.Router) {
			ar.Use(requireAdmin)
			ar.Get("/users", s.handleListUsers)
			ar.Post("/users", s.handleCreateUser)
			ar.Put("/users/{email}/password", s.handleSetPassword)
			ar.Delete("/users/{email}", s.handleDeleteUser)
			ar.Get("/progress", s.handleAllProgress)
			ar.Get("/progress/summary", s.handleProgressSummary)
			ar.Get("/progress.csv", s.handleProgressCSV)
		})
	})
	return r
}

// requestLogger logs one line per request with zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func requestFields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
}
