// Package legacy imports the usuarios.csv and progreso.csv files kept by
// the earlier spreadsheet-backed version of the app.
package legacy

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/reading"
)

// LegacyTotal is the question count of every legacy quiz.
const LegacyTotal = 5

// UserInserter stores a pre-hashed credential. accounts.Service
// implements it.
type UserInserter interface {
	Insert(ctx context.Context, email string, hash []byte, scheme accounts.HashScheme, role accounts.Role) error
}

// ProgressAppender stores a scored attempt with its timestamp.
// progress.Log implements it.
type ProgressAppender interface {
	AppendAt(ctx context.Context, email string, level reading.Level, score, total int, at time.Time) error
}

// Skip describes a row that was not imported.
type Skip struct {
	Line   int
	Email  string
	Reason string
}

// Report summarizes an import.
type Report struct {
	Imported int
	Skipped  []Skip
}

func (r *Report) skip(line int, email, format string, args ...any) {
	r.Skipped = append(r.Skipped, Skip{Line: line, Email: email, Reason: fmt.Sprintf(format, args...)})
}

var (
	bytesRepr = regexp.MustCompile(`^b(['"])(.*)(['"])$`)
	bcryptRe  = regexp.MustCompile(`^\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}$`)
	sha256Re  = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
)

// ClassifyHash strips a Python bytes repr (b'...') and reports which
// scheme the remaining hash uses.
func ClassifyHash(cell string) ([]byte, accounts.HashScheme, bool) {
	h := strings.TrimSpace(cell)
	if m := bytesRepr.FindStringSubmatch(h); m != nil && m[1] == m[3] {
		h = m[2]
	}
	switch {
	case bcryptRe.MatchString(h):
		return []byte(h), accounts.SchemeBcrypt, true
	case sha256Re.MatchString(h):
		return []byte(strings.ToLower(h)), accounts.SchemeSHA256, true
	}
	return nil, "", false
}

// ImportUsers reads an email,password CSV. Rows with an unrecognized hash,
// an invalid email or an email already present are skipped and reported.
// Every imported user gets the student role.
func ImportUsers(ctx context.Context, r io.Reader, dst UserInserter) (*Report, error) {
	rows, err := readCSV(r, "email", "password")
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	for _, row := range rows {
		email := row.cells[0]
		hash, scheme, ok := ClassifyHash(row.cells[1])
		if !ok {
			rep.skip(row.line, email, "unrecognized password hash")
			continue
		}
		err := dst.Insert(ctx, email, hash, scheme, accounts.RoleStudent)
		switch {
		case errors.Is(err, accounts.ErrUserExists):
			rep.skip(row.line, email, "already exists")
		case errors.Is(err, accounts.ErrInvalidEmail):
			rep.skip(row.line, email, "invalid email")
		case err != nil:
			return rep, fmt.Errorf("line %d: %w", row.line, err)
		default:
			rep.Imported++
		}
	}
	return rep, nil
}

// ImportProgress reads a Usuario,Nivel,Puntaje CSV. The legacy file has no
// timestamps, so rows are stamped one millisecond apart starting at start,
// preserving file order.
func ImportProgress(ctx context.Context, r io.Reader, dst ProgressAppender, start time.Time) (*Report, error) {
	rows, err := readCSV(r, "usuario", "nivel", "puntaje")
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	for i, row := range rows {
		email := strings.ToLower(row.cells[0])
		level, err := reading.ParseLevel(row.cells[1])
		if err != nil {
			rep.skip(row.line, email, "unknown level %q", row.cells[1])
			continue
		}
		score, err := strconv.Atoi(row.cells[2])
		if err != nil || score < 0 || score > LegacyTotal {
			rep.skip(row.line, email, "invalid score %q", row.cells[2])
			continue
		}
		at := start.Add(time.Duration(i) * time.Millisecond)
		if err := dst.AppendAt(ctx, email, level, score, LegacyTotal, at); err != nil {
			return rep, fmt.Errorf("line %d: %w", row.line, err)
		}
		rep.Imported++
	}
	return rep, nil
}

type csvRow struct {
	line  int
	cells []string
}

// readCSV reads r and returns the named columns of every data row, trimmed.
// Column names are matched case-insensitively; extra columns are ignored.
func readCSV(r io.Reader, columns ...string) ([]csvRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := make([]int, len(columns))
	for i, c := range columns {
		p, ok := pos[c]
		if !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
		idx[i] = p
	}

	var rows []csvRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		cells := make([]string, len(columns))
		for i, p := range idx {
			if p < len(rec) {
				cells[i] = strings.TrimSpace(rec[p])
			}
		}
		rows = append(rows, csvRow{line: line, cells: cells})
	}
	return rows, nil
}
