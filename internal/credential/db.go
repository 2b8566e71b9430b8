package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/bookshelf/bookshelf-web/internal/crypto"
)

const schema = `CREATE TABLE IF NOT EXISTS credentials (
	id VARCHAR(36) PRIMARY KEY,
	token TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// OpenDB opens a connection pool for driver ("mysql" or "sqlite") and makes
// sure the credentials table exists.
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// One writer at a time keeps SQLite out of "database is locked".
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create credentials table: %w", err)
	}

	log.Info().Str("driver", driver).Msg("credential database ready")
	return db, nil
}

// DBStore keeps the token server-side in the credentials table. The browser
// only holds a random handle naming the row.
type DBStore struct {
	db     *sql.DB
	sealer *crypto.Sealer
	opts   CookieOptions
}

// NewDBStore creates a DBStore. Tokens are sealed at rest with sealer.
func NewDBStore(db *sql.DB, sealer *crypto.Sealer, opts CookieOptions) *DBStore {
	return &DBStore{db: db, sealer: sealer, opts: opts}
}

func (s *DBStore) Get(r *http.Request) (string, error) {
	handle, ok := s.handle(r)
	if !ok {
		return "", ErrNoToken
	}

	var sealed string
	err := s.db.QueryRowContext(r.Context(), `SELECT token FROM credentials WHERE id = ?`, handle).Scan(&sealed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("load credential: %w", err)
	}

	token, err := s.sealer.Open(sealed)
	if err != nil || len(token) == 0 {
		return "", ErrNoToken
	}
	return string(token), nil
}

func (s *DBStore) Set(w http.ResponseWriter, r *http.Request, token string) error {
	if handle, ok := s.handle(r); ok {
		if err := s.delete(r.Context(), handle); err != nil {
			return err
		}
	}

	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	handle := uuid.NewString()
	if _, err := s.db.ExecContext(r.Context(), `INSERT INTO credentials (id, token) VALUES (?, ?)`, handle, sealed); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	http.SetCookie(w, s.opts.cookie(handle))
	return nil
}

func (s *DBStore) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, s.opts.expired())

	handle, ok := s.handle(r)
	if !ok {
		return nil
	}
	return s.delete(r.Context(), handle)
}

func (s *DBStore) delete(ctx context.Context, handle string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, handle); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// handle returns the cookie's row id if it is a well-formed UUID.
func (s *DBStore) handle(r *http.Request) (string, bool) {
	value, ok := s.opts.read(r)
	if !ok {
		return "", false
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
