package httpapi

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/logging"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/reading"
)

type levelJSON struct {
	ID    reading.Level `json:"id"`
	Label string        `json:"label"`
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]levelJSON, len(reading.AllLevels))
	for i, l := range reading.AllLevels {
		out[i] = levelJSON{ID: l, Label: l.Label(s.opts.Language)}
	}
	writeJSON(w, http.StatusOK, out)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	Role        accounts.Role `json:"role"`
}

// POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	u, err := s.accounts.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", logging.Redact(req.Email)), zap.String("ip", r.RemoteAddr))
		s.fail(w, r, err)
		return
	}
	tok, err := s.tokens.Issue(u)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: tok, Role: u.Role})
}

type startQuizRequest struct {
	Level string `json:"level"`
}

type questionJSON struct {
	Text    string        `json:"text"`
	Options []string      `json:"options"`
	Skill   reading.Skill `json:"skill"`
}

type quizJSON struct {
	ID        string          `json:"id"`
	Level     reading.Level   `json:"level"`
	Passage   reading.Passage `json:"passage"`
	Questions []questionJSON  `json:"questions"`
}

// POST /quizzes
func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	level, err := reading.ParseLevel(req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := s.quizzes.Start(r.Context(), ClaimsFrom(r.Context()).Subject, level)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := quizJSON{ID: q.ID, Level: q.Level, Passage: q.Passage, Questions: make([]questionJSON, len(q.Questions))}
	for i, qq := range q.Questions {
		out.Questions[i] = questionJSON{Text: qq.Text, Options: qq.Options, Skill: qq.Skill}
	}
	writeJSON(w, http.StatusCreated, out)
}

type submitRequest struct {
	Answers []string `json:"answers"`
}

type submitResponse struct {
	Correct      int      `json:"correct"`
	Total        int      `json:"total"`
	Perfect      bool     `json:"perfect"`
	Feedback     string   `json:"feedback"`
	Answers      []string `json:"answers"`
	Marks        []bool   `json:"marks"`
	Key          []string `json:"key"`
	Explanations []string `json:"explanations"`
}

// POST /quizzes/{id}/submit
func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	out, err := s.quizzes.Submit(r.Context(), chi.URLParam(r, "id"), ClaimsFrom(r.Context()).Subject, req.Answers)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Correct:      out.Result.Correct,
		Total:        out.Result.Total,
		Perfect:      out.Result.Perfect(),
		Feedback:     out.Result.Feedback.Message(s.opts.Language),
		Answers:      out.Answers,
		Marks:        out.Result.Marks,
		Key:          out.Key,
		Explanations: out.Explanations,
	})
}

type recordJSON struct {
	Email     string        `json:"email"`
	Level     reading.Level `json:"level"`
	Score     int           `json:"score"`
	Total     int           `json:"total"`
	QuizID    string        `json:"quiz_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func recordsJSON(recs []progress.Record) []recordJSON {
	out := make([]recordJSON, len(recs))
	for i, r := range recs {
		out[i] = recordJSON{Email: r.Email, Level: r.Level, Score: r.Score, Total: r.Total, QuizID: r.QuizID, CreatedAt: r.CreatedAt}
	}
	return out
}

// GET /progress/me
func (s *Server) handleMyProgress(w http.ResponseWriter, r *http.Request) {
	recs, err := s.progress.ForUser(r.Context(), ClaimsFrom(r.Context()).Subject)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsJSON(recs))
}

// GET /progress
func (s *Server) handleAllProgress(w http.ResponseWriter, r *http.Request) {
	recs, err := s.progress.ReadAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsJSON(recs))
}

type summaryJSON struct {
	Email    string        `json:"email"`
	Level    reading.Level `json:"level"`
	Attempts int           `json:"attempts"`
	Best     int           `json:"best"`
	Total    int           `json:"total"`
	Average  float64       `json:"average"`
	Last     time.Time     `json:"last"`
}

// GET /progress/summary
func (s *Server) handleProgressSummary(w http.ResponseWriter, r *http.Request) {
	sums, err := s.progress.Summary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]summaryJSON, len(sums))
	for i, u := range sums {
		out[i] = summaryJSON(u)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /progress.csv
func (s *Server) handleProgressCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.progress.ExportCSV(r.Context(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="progress.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type userJSON struct {
	Email     string              `json:"email"`
	Role      accounts.Role       `json:"role"`
	Scheme    accounts.HashScheme `json:"scheme"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// GET /users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.accounts.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]userJSON, len(users))
	for i, u := range users {
		out[i] = userJSON(u)
	}
	writeJSON(w, http.StatusOK, out)
}

type createUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type createUserResponse struct {
	Email    string        `json:"email"`
	Role     accounts.Role `json:"role"`
	Password string        `json:"password"`
}

// POST /users
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	role, err := accounts.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	email, err := accounts.NormalizeEmail(req.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pw, err := s.accounts.Create(r.Context(), email, role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createUserResponse{Email: email, Role: role, Password: pw})
}

type setPasswordRequest struct {
	Password string `json:"password"`
}

// PUT /users/{email}/password
func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password required")
		return
	}
	if err := s.accounts.SetPassword(r.Context(), emailParam(r), req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /users/{email}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), emailParam(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func emailParam(r *http.Request) string {
	raw := chi.URLParam(r, "email")
	if e, err := url.PathUnescape(raw); err == nil {
		return e
	}
	return raw
}
