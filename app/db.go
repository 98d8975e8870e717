package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/FelixBlom97/EloStealo/app/codec"
	"github.com/FelixBlom97/EloStealo/app/config"
	"github.com/FelixBlom97/EloStealo/app/game"
	"github.com/FelixBlom97/EloStealo/app/migrations"
	"github.com/FelixBlom97/EloStealo/app/models"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrVersionConflict = errors.New("game was modified by another request")
)

// StoredGame is a game together with the row metadata it was loaded with.
type StoredGame struct {
	ID       string
	Game     *game.ChessGame
	Encoding codec.Format
	Data     []byte
	Version  int
}

// GameStore persists games and the rule catalog.
type GameStore interface {
	SaveGame(ctx context.Context, id string, g *game.ChessGame) error
	GetGame(ctx context.Context, id string) (*StoredGame, error)
	// UpdateGame writes sg.Game back if the row is still at sg.Version.
	UpdateGame(ctx context.Context, sg *StoredGame) error
	ListGameIDs(ctx context.Context, encoding codec.Format, limit, offset int) ([]string, error)
	ListRules(ctx context.Context) ([]models.Rule, error)
	ReplaceRules(ctx context.Context, rules []models.Rule) error
}

var store GameStore

// MustInitStore opens the configured store and applies migrations. It logs
// fatally on error.
func MustInitStore(cfg *config.Config) {
	s, err := OpenStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.Store, err)
	}
	log.Printf("Connected to %s", cfg.Store)
	store = s
}

// OpenStore opens the store selected by STORE.
func OpenStore(ctx context.Context, cfg *config.Config) (*SQLStore, error) {
	if cfg.Store == config.StoreSQLite {
		return OpenSQLite(ctx, cfg.SQLite.Path)
	}
	return OpenPostgres(ctx, cfg.DB)
}

// SQLStore implements GameStore on Postgres or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect migrations.Dialect
}

func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*SQLStore, error) {
	d, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	return newSQLStore(ctx, d, migrations.Postgres)
}

// OpenSQLite opens path, or a private in-memory database for ":memory:".
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	if path == ":memory:" {
		dsn = path
	}
	d, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if path == ":memory:" {
		d.SetMaxOpenConns(1)
	}
	return newSQLStore(ctx, d, migrations.SQLite)
}

func newSQLStore(ctx context.Context, d *sql.DB, dialect migrations.Dialect) (*SQLStore, error) {
	if err := d.PingContext(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	if err := migrations.Apply(ctx, d, dialect); err != nil {
		d.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &SQLStore{db: d, dialect: dialect}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(query string) string {
	return migrations.Rebind(s.dialect, query)
}

func (s *SQLStore) SaveGame(ctx context.Context, id string, g *game.ChessGame) error {
	data, err := codec.Encode(g.Actions())
	if err != nil {
		return fmt.Errorf("encode game %s: %w", id, err)
	}
	// Room codes are reused: a new game in the same room replaces the old one.
	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO games (
			id, white, black, elo_white, elo_black, rule_white, rule_black,
			encoding, actions, result, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT (id) DO UPDATE SET
			white = excluded.white,
			black = excluded.black,
			elo_white = excluded.elo_white,
			elo_black = excluded.elo_black,
			rule_white = excluded.rule_white,
			rule_black = excluded.rule_black,
			encoding = excluded.encoding,
			actions = excluded.actions,
			result = excluded.result,
			version = games.version + 1,
			updated_at = CURRENT_TIMESTAMP
	`),
		id,
		g.White.Name,
		g.Black.Name,
		g.White.Elo,
		g.Black.Elo,
		g.White.Rule,
		g.Black.Rule,
		string(codec.FormatCompact),
		data,
		string(g.Result()),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) GetGame(ctx context.Context, id string) (*StoredGame, error) {
	var (
		white, black game.Player
		encoding     string
		data         []byte
		version      int
	)
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT white, black, elo_white, elo_black, rule_white, rule_black,
		       encoding, actions, version
		FROM games
		WHERE id = ?
	`), id).Scan(
		&white.Name, &black.Name,
		&white.Elo, &black.Elo,
		&white.Rule, &black.Rule,
		&encoding, &data, &version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", id, ErrGameNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	format := codec.Format(encoding)
	actions, err := codec.DecodeFormat(format, data)
	if err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	g, err := game.Restore(white, black, actions)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", id, err)
	}
	return &StoredGame{ID: id, Game: g, Encoding: format, Data: data, Version: version}, nil
}

func (s *SQLStore) UpdateGame(ctx context.Context, sg *StoredGame) error {
	data, err := codec.Encode(sg.Game.Actions())
	if err != nil {
		return fmt.Errorf("encode game %s: %w", sg.ID, err)
	}
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE games
		SET actions = ?, encoding = ?, result = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND version = ?
	`),
		data,
		string(codec.FormatCompact),
		string(sg.Game.Result()),
		sg.ID,
		sg.Version,
	)
	if err != nil {
		return fmt.Errorf("update game %s: %w", sg.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game %s: %w", sg.ID, err)
	}
	if n == 0 {
		var found int
		err := s.db.QueryRowContext(ctx, s.q("SELECT 1 FROM games WHERE id = ?"), sg.ID).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("game %s: %w", sg.ID, ErrGameNotFound)
		}
		return fmt.Errorf("game %s at version %d: %w", sg.ID, sg.Version, ErrVersionConflict)
	}
	sg.Version++
	sg.Encoding = codec.FormatCompact
	sg.Data = data
	return nil
}

func (s *SQLStore) ListGameIDs(ctx context.Context, encoding codec.Format, limit, offset int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id FROM games
		WHERE encoding = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`), string(encoding), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLStore) ListRules(ctx context.Context) ([]models.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, elo, description
		FROM rules
		ORDER BY elo, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	out := []models.Rule{}
	for rows.Next() {
		var r models.Rule
		if err := rows.Scan(&r.ID, &r.Name, &r.Elo, &r.Description); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceRules swaps the whole catalog in one transaction.
func (s *SQLStore) ReplaceRules(ctx context.Context, rules []models.Rule) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rules"); err != nil {
		return fmt.Errorf("delete old rules: %w", err)
	}

	var stmt *sql.Stmt
	if s.dialect == migrations.Postgres {
		stmt, err = tx.PrepareContext(ctx, pq.CopyIn("rules", "id", "name", "elo", "description"))
	} else {
		stmt, err = tx.PrepareContext(ctx, "INSERT INTO rules (id, name, elo, description) VALUES (?, ?, ?, ?)")
	}
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rules {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, r.Elo, r.Description); err != nil {
			return fmt.Errorf("insert rule %d: %w", r.ID, err)
		}
	}
	if s.dialect == migrations.Postgres {
		// Flush the COPY buffer.
		if _, err := stmt.ExecContext(ctx); err != nil {
			return err
		}
	}
	return tx.Commit()
}
