// server/store/postgres/store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ViniZap4/calmrush-server/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ domain.Store = (*Store)(nil)

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// Users

const userColumns = `id, name, email, password, image, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		password *string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &password, &u.Image, &u.CreatedAt); err != nil {
		return nil, err
	}
	if password != nil {
		u.PasswordHash = *password
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

	var password *string
	if u.PasswordHash != "" {
		password = &u.PasswordHash
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
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
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", notFound(err))
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return u, nil
}

// Thoughts

const thoughtColumns = `id, user_id, text, x, y, color, sentiment, is_processed, solution, created_at`

func scanThought(row pgx.Row) (*domain.Thought, error) {
	var (
		t                domain.Thought
		color, sentiment string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.X, &t.Y, &color, &sentiment, &t.IsProcessed, &t.Solution, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Color = domain.Color(color)
	t.Sentiment = domain.Sentiment(sentiment)
	return &t, nil
}

func (s *Store) ListThoughts(ctx context.Context, userID string) ([]*domain.Thought, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+thoughtColumns+` FROM thoughts WHERE user_id = $1 ORDER BY created_at DESC, seq DESC`,
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO thoughts (`+thoughtColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
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

	t, err := scanThought(s.pool.QueryRow(ctx, `
		UPDATE thoughts SET
			x = COALESCE($3, x),
			y = COALESCE($4, y),
			is_processed = COALESCE($5, is_processed),
			solution = COALESCE($6, solution),
			color = COALESCE($7, color),
			sentiment = COALESCE($8, sentiment)
		WHERE id = $1 AND user_id = $2
		RETURNING `+thoughtColumns,
		id, userID, p.X, p.Y, p.IsProcessed, p.Solution, color, sentiment,
	))
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", notFound(err))
	}
	return t, nil
}

func (s *Store) DeleteThought(ctx context.Context, userID, id string) (*domain.Thought, error) {
	t, err := scanThought(s.pool.QueryRow(ctx,
		`DELETE FROM thoughts WHERE id = $1 AND user_id = $2 RETURNING `+thoughtColumns,
		id, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("delete thought: %w", notFound(err))
	}
	return t, nil
}

// History

func (s *Store) ListHistory(ctx context.Context, userID string) ([]*domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, problem, solution, created_at
		FROM thought_history
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC`,
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

// AppendHistory copies all entries in one COPY, so a batch lands whole or not at all.
func (s *Store) AppendHistory(ctx context.Context, entries []*domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ts := now()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = ts
		}
	}

	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"thought_history"},
		[]string{"id", "user_id", "problem", "solution", "created_at"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.ID, e.UserID, e.Problem, e.Solution, e.CreatedAt}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Wellness

func (s *Store) CreateSession(ctx context.Context, ws *domain.WellnessSession) error {
	if ws.ID == "" {
		ws.ID = uuid.NewString()
	}
	if ws.CreatedAt.IsZero() {
		ws.CreatedAt = now()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO wellness_sessions (id, user_id, kind, duration, completed, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		ws.ID, ws.UserID, string(ws.Kind), ws.Duration, ws.Completed, ws.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert %s session: %w", ws.Kind, err)
	}
	return nil
}

func (s *Store) ListSessions(ctx context.Context, userID string, kind domain.SessionKind, limit int) ([]*domain.WellnessSession, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, kind, duration, completed, created_at
		FROM wellness_sessions
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC, seq DESC
		LIMIT $3`,
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
	err := s.pool.QueryRow(ctx, `
		SELECT u.name, u.email, u.created_at,
			(SELECT count(*) FROM thoughts WHERE user_id = u.id),
			(SELECT count(*) FROM thoughts WHERE user_id = u.id AND is_processed),
			(SELECT count(*) FROM thought_history WHERE user_id = u.id),
			(SELECT count(*) FROM wellness_sessions WHERE user_id = u.id AND kind = 'meditation' AND completed),
			(SELECT count(*) FROM wellness_sessions WHERE user_id = u.id AND kind = 'breathing' AND completed)
		FROM users u
		WHERE u.id = $1`,
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
