package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrSessionNotFound indicates the requested session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// Store persists recorded sessions to SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	ID      string
	Started int64
	Events  int
}

// OpenStore opens (creating if needed) a session store at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create tables if needed
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started INTEGER NOT NULL,
		dropped INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
		session_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		addr INTEGER NOT NULL,
		refcount INTEGER NOT NULL,
		size INTEGER NOT NULL,
		unix_nano INTEGER NOT NULL,
		PRIMARY KEY (session_id, seq)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating events table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession writes a session and its events in one transaction,
// replacing any prior copy of the same session.
func (s *Store) SaveSession(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clearing prior events: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO sessions (id, started, dropped) VALUES (?, ?, ?)`,
		sess.ID, sess.Started, sess.Dropped); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO events
		(session_id, seq, kind, addr, refcount, size, unix_nano)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for _, e := range sess.Events {
		if _, err := stmt.Exec(sess.ID, e.Seq, e.Kind, int64(e.Addr),
			e.Refcount, int64(e.Size), e.UnixNano); err != nil {
			return fmt.Errorf("saving event %d: %w", e.Seq, err)
		}
	}

	return tx.Commit()
}

// LoadSession reads one session and its events back.
func (s *Store) LoadSession(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess Session
	err := s.db.QueryRow(`SELECT id, started, dropped FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Started, &sess.Dropped)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}

	rows, err := s.db.Query(`SELECT seq, kind, addr, refcount, size, unix_nano
		FROM events WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return Session{}, fmt.Errorf("loading events: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e Event
		var addr, size int64
		if err := rows.Scan(&e.Seq, &e.Kind, &addr, &e.Refcount, &size, &e.UnixNano); err != nil {
			return Session{}, fmt.Errorf("scanning event: %w", err)
		}
		e.Addr = uint64(addr)
		e.Size = uint64(size)
		sess.Events = append(sess.Events, e)
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("reading events: %w", err)
	}
	return sess, nil
}

// ListSessions returns summaries of all stored sessions, newest first.
func (s *Store) ListSessions() ([]SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT s.id, s.started, COUNT(e.seq)
		FROM sessions s LEFT JOIN events e ON e.session_id = s.id
		GROUP BY s.id, s.started ORDER BY s.started DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.Started, &info.Events); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
