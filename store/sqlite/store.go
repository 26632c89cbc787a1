// server/store/sqlite/store.go
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/ViniZap4/calmrush-server/domain"
)

//go:embed schema.sql
var schema string

// Store is the single-file backend used for local development and tests.
type Store struct {
	db *sql.DB
}

var _ domain.Store = (*Store)(nil)

// New opens (or creates) the database at path. Use ":memory:" for a
// throwaway database; the pool is pinned to one connection so every query
// sees the same in-memory file.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func now() time.Time {
	return time.Now().UTC()
}

func isUniqueViolation(err error) bool {
	var sqErr sqlite3.Error
	return errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// Users

const userColumns = `id, name, email, password, image, created_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u        domain.User
		password sql.NullString
		image    sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &password, &image, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.PasswordHash = password.String
	if image.Valid {
		u.Image = &image.String
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}

	password := sql.NullString{String: u.PasswordHash, Valid: u.PasswordHash != ""}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, password, u.Image, u.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", notFound(err))
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return u, nil
}

// Thoughts

const thoughtColumns = `id, user_id, text, x, y, color, sentiment, is_processed, solution, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanThought(row scanner) (*domain.Thought, error) {
	var (
		t                domain.Thought
		color, sentiment string
		solution         sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.X, &t.Y, &color, &sentiment, &t.IsProcessed, &solution, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Color = domain.Color(color)
	t.Sentiment = domain.Sentiment(sentiment)
	if solution.Valid {
		t.Solution = &solution.String
	}
	return &t, nil
}

func (s *Store) getThought(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, userID, id string) (*domain.Thought, error) {
	return scanThought(q.QueryRowContext(ctx,
		`SELECT `+thoughtColumns+` FROM thoughts WHERE id = ? AND user_id = ?`, id, userID))
}

func (s *Store) ListThoughts(ctx context.Context, userID string) ([]*domain.Thought, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+thoughtColumns+` FROM thoughts WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}
	defer rows.Close()

	thoughts := []*domain.Thought{}
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, fmt.Errorf("scan thought: %w", err)
		}
		thoughts = append(thoughts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}
	return thoughts, nil
}

func (s *Store) CreateThought(ctx context.Context, t *domain.Thought) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO thoughts (`+thoughtColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Text, t.X, t.Y, string(t.Color), string(t.Sentiment), t.IsProcessed, t.Solution, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert thought: %w", err)
	}
	return nil
}

func (s *Store) UpdateThought(ctx context.Context, userID, id string, p domain.ThoughtPatch) (*domain.Thought, error) {
	var color, sentiment *string
	if p.Color != nil {
		c := string(*p.Color)
		color = &c
	}
	if p.Sentiment != nil {
		v := string(*p.Sentiment)
		sentiment = &v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE thoughts SET
			x = COALESCE(?, x),
			y = COALESCE(?, y),
			is_processed = COALESCE(?, is_processed),
			solution = COALESCE(?, solution),
			color = COALESCE(?, color),
			sentiment = COALESCE(?, sentiment)
		WHERE id = ? AND user_id = ?`,
		p.X, p.Y, p.IsProcessed, p.Solution, color, sentiment, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("update thought: %w", domain.ErrNotFound)
	}

	t, err := s.getThought(ctx, tx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", notFound(err))
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update thought: %w", err)
	}
	return t, nil
}

func (s *Store) DeleteThought(ctx context.Context, userID, id string) (*domain.Thought, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("delete thought: %w", err)
	}
	defer tx.Rollback()

	t, err := s.getThought(ctx, tx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("delete thought: %w", notFound(err))
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM thoughts WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return nil, fmt.Errorf("delete thought: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete thought: %w", err)
	}
	return t, nil
}

// History

func (s *Store) ListHistory(ctx context.Context, userID string) ([]*domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, problem, solution, created_at
		FROM thought_history
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []*domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Problem, &e.Solution, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (s *Store) AppendHistory(ctx context.Context, entries []*domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO thought_history (id, user_id, problem, solution, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	defer stmt.Close()

	ts := now()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = ts
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.UserID, e.Problem, e.Solution, e.CreatedAt); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
	}
	return tx.Commit()
}

// Wellness

func (s *Store) CreateSession(ctx context.Context, ws *domain.WellnessSession) error {
	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}
	if ws.CreatedAt.IsZero() {
		ws.CreatedAt = now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wellness_sessions (id, user_id, kind, duration, completed, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ws.ID, ws.UserID, string(ws.Kind), ws.Duration, ws.Completed, ws.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert %s session: %w", ws.Kind, err)
	}
	return nil
}

func (s *Store) ListSessions(ctx context.Context, userID string, kind domain.SessionKind, limit int) ([]*domain.WellnessSession, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, kind, duration, completed, created_at
		FROM wellness_sessions
		WHERE user_id = ? AND kind = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`,
		userID, string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s sessions: %w", kind, err)
	}
	defer rows.Close()

	sessions := []*domain.WellnessSession{}
	for rows.Next() {
		var (
			ws domain.WellnessSession
			k  string
		)
		if err := rows.Scan(&ws.ID, &ws.UserID, &k, &ws.Duration, &ws.Completed, &ws.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ws.Kind = domain.SessionKind(k)
		sessions = append(sessions, &ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s sessions: %w", kind, err)
	}
	return sessions, nil
}

// Stats

func (s *Store) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	var st domain.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT u.name, u.email, u.created_at,
			(SELECT count(*) FROM thoughts WHERE user_id = u.id),
			(SELECT count(*) FROM thoughts WHERE user_id = u.id AND is_processed),
			(SELECT count(*) FROM thought_history WHERE user_id = u.id),
			(SELECT count(*) FROM wellness_sessions WHERE user_id = u.id AND kind = 'meditation' AND completed),
			(SELECT count(*) FROM wellness_sessions WHERE user_id = u.id AND kind = 'breathing' AND completed)
		FROM users u
		WHERE u.id = ?`,
		userID,
	).Scan(
		&st.User.Name, &st.User.Email, &st.User.JoinDate,
		&st.TotalThoughts, &st.ResolvedThoughts, &st.ThoughtHistoryCount,
		&st.MeditationSessions, &st.BreathingSessions,
	)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", notFound(err))
	}
	return &st, nil
}
