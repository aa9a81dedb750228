package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/swing.report/internal/analytics"
	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/shots"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("session not found")

// Session is one stored practice session.
type Session struct {
	ID        string                    `json:"id"`
	Label     string                    `json:"label"`
	Club      string                    `json:"club"`
	CreatedAt time.Time                 `json:"createdAt"`
	Columns   []shots.Column            `json:"columns"`
	Shots     []shots.Shot              `json:"shots"`
	Config    *config.RadarConfig       `json:"config,omitempty"`
	Analytics *analytics.RadarAnalytics `json:"analytics,omitempty"`
}

// SessionSummary is a session without its rows.
type SessionSummary struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Club      string    `json:"club"`
	CreatedAt time.Time `json:"createdAt"`
	ShotCount int       `json:"shotCount"`
}

// Input returns the engine input of the session.
func (s *Session) Input() analytics.Input {
	return analytics.Input{
		Columns:   s.Columns,
		Shots:     s.Shots,
		Config:    s.Config,
		Analytics: s.Analytics,
		Club:      s.Club,
	}
}

// CreateSession stores s with its columns and shots in one transaction.
// An empty ID is replaced by a new UUID and a zero CreatedAt by the current
// time; both are written back to s.
func (db *DB) CreateSession(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	cfgJSON, err := nullableJSON(s.Config)
	if err != nil {
		return fmt.Errorf("encode session config: %w", err)
	}
	anaJSON, err := nullableJSON(s.Analytics)
	if err != nil {
		return fmt.Errorf("encode session analytics: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (session_id, label, club, created_unix_nanos, config_json, analytics_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Label, s.Club, s.CreatedAt.UnixNano(), cfgJSON, anaJSON)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for i, c := range s.Columns {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_columns (session_id, position, column_key, column_group, label, unit)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, i, c.Key, c.Group, c.Label, c.Unit)
		if err != nil {
			return fmt.Errorf("insert column %q: %w", c.Key, err)
		}
	}
	if err := insertShots(ctx, tx, s.ID, 0, s.Shots, nil); err != nil {
		return err
	}
	return tx.Commit()
}

// AppendShots adds rows after the existing shots of a session. progress, if
// not nil, is called after each stored row.
func (db *DB) AppendShots(ctx context.Context, id string, rows []shots.Shot, progress func()) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append shots: %w", err)
	}
	defer tx.Rollback()

	var next sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(position) + 1 FROM shots WHERE session_id = ?`, id).Scan(&next); err != nil {
		return fmt.Errorf("read shot count: %w", err)
	}
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) > 0 FROM sessions WHERE session_id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !exists {
		return ErrSessionNotFound
	}
	if err := insertShots(ctx, tx, id, int(next.Int64), rows, progress); err != nil {
		return err
	}
	return tx.Commit()
}

func insertShots(ctx context.Context, tx *sql.Tx, id string, start int, rows []shots.Shot, progress func()) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shots (session_id, position, shot_index, values_json)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare shot insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range rows {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode shot %d: %w", start+i+1, err)
		}
		var index sql.NullInt64
		if s.Index > 0 {
			index = sql.NullInt64{Int64: int64(s.Index), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, start+i, index, string(data)); err != nil {
			return fmt.Errorf("insert shot %d: %w", start+i+1, err)
		}
		if progress != nil {
			progress()
		}
	}
	return nil
}

// GetSession loads a session with its columns and shots in stored order.
func (db *DB) GetSession(ctx context.Context, id string) (*Session, error) {
	s := &Session{ID: id}
	var created int64
	var cfgJSON, anaJSON sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT label, club, created_unix_nanos, config_json, analytics_json
		FROM sessions WHERE session_id = ?`, id).
		Scan(&s.Label, &s.Club, &created, &cfgJSON, &anaJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	s.CreatedAt = time.Unix(0, created).UTC()

	if cfgJSON.Valid {
		s.Config = &config.RadarConfig{}
		if err := json.Unmarshal([]byte(cfgJSON.String), s.Config); err != nil {
			return nil, fmt.Errorf("decode session config: %w", err)
		}
	}
	if anaJSON.Valid {
		s.Analytics = &analytics.RadarAnalytics{}
		if err := json.Unmarshal([]byte(anaJSON.String), s.Analytics); err != nil {
			return nil, fmt.Errorf("decode session analytics: %w", err)
		}
	}

	if s.Columns, err = db.sessionColumns(ctx, id); err != nil {
		return nil, err
	}
	if s.Shots, err = db.sessionShots(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) sessionColumns(ctx context.Context, id string) ([]shots.Column, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_key, column_group, label, unit
		FROM session_columns WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	cols := []shots.Column{}
	for rows.Next() {
		var c shots.Column
		var group, unit sql.NullString
		if err := rows.Scan(&c.Key, &group, &c.Label, &unit); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		if group.Valid {
			c.Group = &group.String
		}
		if unit.Valid {
			c.Unit = &unit.String
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (db *DB) sessionShots(ctx context.Context, id string) ([]shots.Shot, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT values_json FROM shots WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query shots: %w", err)
	}
	defer rows.Close()

	out := []shots.Shot{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan shot: %w", err)
		}
		var s shots.Shot
		if err := json.Unmarshal([]byte(data), &s); err != nil {
			return nil, fmt.Errorf("decode shot %d: %w", len(out)+1, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSessions returns the most recent sessions first. A limit of zero or
// less lists every session.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
		SELECT s.session_id, s.label, s.club, s.created_unix_nanos,
		       (SELECT COUNT(*) FROM shots WHERE shots.session_id = s.session_id)
		FROM sessions s
		ORDER BY s.created_unix_nanos DESC, s.session_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionSummary{}
	for rows.Next() {
		var s SessionSummary
		var created int64
		if err := rows.Scan(&s.ID, &s.Label, &s.Club, &created, &s.ShotCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateSessionConfig replaces the stored config of a session.
func (db *DB) UpdateSessionConfig(ctx context.Context, id string, cfg *config.RadarConfig) error {
	data, err := nullableJSON(cfg)
	if err != nil {
		return fmt.Errorf("encode session config: %w", err)
	}
	return db.updateSession(ctx, id, "config_json", data)
}

// UpdateSessionAnalytics replaces the stored analytics of a session.
func (db *DB) UpdateSessionAnalytics(ctx context.Context, id string, a *analytics.RadarAnalytics) error {
	data, err := nullableJSON(a)
	if err != nil {
		return fmt.Errorf("encode session analytics: %w", err)
	}
	return db.updateSession(ctx, id, "analytics_json", data)
}

// column is one of a fixed set of names, never user input.
func (db *DB) updateSession(ctx context.Context, id, column string, value sql.NullString) error {
	res, err := db.ExecContext(ctx, "UPDATE sessions SET "+column+" = ? WHERE session_id = ?", value, id)
	if err != nil {
		return fmt.Errorf("update session %s: %w", column, err)
	}
	return expectOne(res)
}

// DeleteSession removes a session and its rows.
func (db *DB) DeleteSession(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func nullableJSON(v any) (sql.NullString, error) {
	switch t := v.(type) {
	case *config.RadarConfig:
		if t == nil {
			return sql.NullString{}, nil
		}
	case *analytics.RadarAnalytics:
		if t == nil {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
