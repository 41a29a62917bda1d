// Package sharedtest provides in-memory services for screen tests.
package sharedtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/scoring"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/store"
)

// Accounts keeps users and plain-text passwords in a map.
type Accounts struct {
	mu        sync.Mutex
	Users     map[string]*accounts.User
	Passwords map[string]string
	NextPass  string
}

// NewAccounts creates Accounts with one student and one admin.
func NewAccounts() *Accounts {
	a := &Accounts{
		Users:     map[string]*accounts.User{},
		Passwords: map[string]string{},
		NextPass:  "Gen3rated!pw",
	}
	a.add("ana@example.com", "anapw", accounts.RoleStudent)
	a.add("admin@example.com", "adminpw", accounts.RoleAdmin)
	return a
}

func (a *Accounts) add(email, pw string, role accounts.Role) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a.Users[email] = &accounts.User{Email: email, Role: role, Scheme: accounts.SchemeBcrypt, CreatedAt: now, UpdatedAt: now}
	a.Passwords[email] = pw
}

func (a *Accounts) Verify(_ context.Context, email, password string) (*accounts.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.Users[email]
	if !ok || a.Passwords[email] != password {
		return nil, accounts.ErrInvalidCredentials
	}
	return u, nil
}

func (a *Accounts) Create(_ context.Context, email string, role accounts.Role) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.Users[email]; ok {
		return "", accounts.ErrUserExists
	}
	a.add(email, a.NextPass, role)
	return a.NextPass, nil
}

func (a *Accounts) SetPassword(_ context.Context, email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.Users[email]; !ok {
		return store.ErrNotFound
	}
	a.Passwords[email] = password
	return nil
}

func (a *Accounts) ResetPassword(ctx context.Context, email string) (string, error) {
	if err := a.SetPassword(ctx, email, a.NextPass); err != nil {
		return "", err
	}
	return a.NextPass, nil
}

func (a *Accounts) Delete(_ context.Context, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.Users[email]; !ok {
		return store.ErrNotFound
	}
	delete(a.Users, email)
	delete(a.Passwords, email)
	return nil
}

func (a *Accounts) List(_ context.Context) ([]accounts.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]accounts.User, 0, len(a.Users))
	for _, email := range []string{"admin@example.com", "ana@example.com"} {
		if u, ok := a.Users[email]; ok {
			out = append(out, *u)
		}
	}
	for email, u := range a.Users {
		if email != "admin@example.com" && email != "ana@example.com" {
			out = append(out, *u)
		}
	}
	return out, nil
}

// Quizzes serves a fixed quiz whose answer for question i is option i%4.
type Quizzes struct {
	StartErr  error
	SubmitErr error
	Starts    int
	Submitted [][]string
}

// Questions returns the fixed question set.
func Questions() []reading.Question {
	qs := make([]reading.Question, 5)
	for i := range qs {
		qs[i] = reading.Question{
			Text:        fmt.Sprintf("Pregunta %d", i+1),
			Options:     []string{fmt.Sprintf("A%d", i), fmt.Sprintf("B%d", i), fmt.Sprintf("C%d", i), fmt.Sprintf("D%d", i)},
			AnswerIndex: i % 4,
			Skill:       reading.AllSkills[i%len(reading.AllSkills)],
			Explanation: fmt.Sprintf("Porque %d", i+1),
		}
	}
	return qs
}

func (q *Quizzes) Start(_ context.Context, email string, level reading.Level) (*quiz.Quiz, error) {
	q.Starts++
	if q.StartErr != nil {
		return nil, q.StartErr
	}
	return &quiz.Quiz{
		ID:        "quiz-1",
		Email:     email,
		Level:     level,
		Passage:   reading.Passage{Title: "El faro", Text: "Había una vez un faro junto al mar."},
		Questions: Questions(),
	}, nil
}

func (q *Quizzes) Submit(_ context.Context, id, email string, answers []string) (*quiz.Outcome, error) {
	if q.SubmitErr != nil {
		return nil, q.SubmitErr
	}
	q.Submitted = append(q.Submitted, answers)
	qs := Questions()
	key := scoring.AnswerKey(qs)
	res := scoring.Score(answers, key)
	expl := make([]string, len(qs))
	for i, qq := range qs {
		expl[i] = qq.Explanation
	}
	return &quiz.Outcome{
		Result:       res,
		Answers:      answers,
		Key:          key,
		Explanations: expl,
		Record:       progress.Record{Email: email, Score: res.Correct, Total: res.Total, QuizID: id},
	}, nil
}

// Progress returns canned records.
type Progress struct {
	Records []progress.Record
	Err     error
}

func (p *Progress) ForUser(_ context.Context, email string) ([]progress.Record, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	var out []progress.Record
	for _, r := range p.Records {
		if r.Email == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (p *Progress) Summary(context.Context) ([]progress.UserSummary, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return progress.Summarize(p.Records), nil
}

// NewEnv wires fresh fakes into an Env with nobody signed in.
func NewEnv() (*shared.Env, *Accounts, *Quizzes, *Progress) {
	acc, qz, prog := NewAccounts(), &Quizzes{}, &Progress{}
	env := &shared.Env{Accounts: acc, Quizzes: qz, Progress: prog, Lang: "es"}
	return env, acc, qz, prog
}

// SignIn marks email as the signed-in user.
func SignIn(env *shared.Env, acc *Accounts, email string) {
	env.User = acc.Users[email]
}

// Run executes cmd and every command it batches, returning the messages.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Key builds a key press for a rune or special key code.
func Key(code rune) tea.KeyPressMsg {
	if code >= ' ' && code < 0x7f {
		return tea.KeyPressMsg{Code: code, Text: string(code)}
	}
	return tea.KeyPressMsg{Code: code}
}

// Type returns one key press per rune of s.
func Type(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}
