package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const defaultLifetime = 24 * time.Hour

// PGStore is a sessions.Store that keeps session values in Postgres and
// only a signed session id in the browser cookie.
type PGStore struct {
	db      *sql.DB
	Codecs  []securecookie.Codec
	Options *sessions.Options
	logger  *slog.Logger
}

// NewPGStore uses keyPairs the same way sessions.NewCookieStore does.
func NewPGStore(db *sql.DB, logger *slog.Logger, keyPairs ...[]byte) *PGStore {
	if logger == nil {
		logger = slog.Default()
	}
	codecs := securecookie.CodecsFromPairs(keyPairs...)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxLength(0)
		}
	}
	return &PGStore{
		db:      db,
		Codecs:  codecs,
		Options: &sessions.Options{Path: "/", MaxAge: int(defaultLifetime.Seconds())},
		logger:  logger.With("component", "SessionStore"),
	}
}

func (s *PGStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *PGStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}
	found, err := s.load(r.Context(), session)
	if err != nil {
		return session, err
	}
	session.IsNew = !found
	return session, nil
}

func (s *PGStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if _, err := s.db.ExecContext(r.Context(), `DELETE FROM http_sessions WHERE id = $1`, session.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	data, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	lifetime := time.Duration(session.Options.MaxAge) * time.Second
	if lifetime == 0 {
		lifetime = defaultLifetime
	}
	_, err = s.db.ExecContext(r.Context(), `
        INSERT INTO http_sessions (id, data, expires_at) VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		session.ID, data, time.Now().Add(lifetime))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("encode session id: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

// load fills session.Values from the row, reporting whether one was found.
func (s *PGStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM http_sessions WHERE id = $1 AND expires_at > now()`, session.ID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if err := securecookie.DecodeMulti(session.Name(), data, &session.Values, s.Codecs...); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteExpired removes sessions past their expiry and returns how many.
func (s *PGStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM http_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

// Cleanup deletes expired sessions every interval until ctx is done.
func (s *PGStore) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				s.logger.Error("Session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}
