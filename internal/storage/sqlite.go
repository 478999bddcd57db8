// Package storage provides the SQLite battle-history ledger.
// Only finished battle outcomes are recorded; combat state is never stored.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for battle history.
type Store struct {
	db *sql.DB
}

// Battle is one finished battle.
type Battle struct {
	ID              int64
	BattleID        string // UUID; generated by SaveBattle when empty
	ScenarioID      string
	Difficulty      string
	FriendlyWon     bool
	Rounds          int
	Survivors       int // Friendly units alive at the end
	EnemiesDefeated int
	Score           int
	Duration        time.Duration // Fighting time, stored in whole seconds
	CreatedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL UNIQUE,
			scenario_id TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			friendly_won INTEGER NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			survivors INTEGER NOT NULL DEFAULT 0,
			enemies_defeated INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_scenario ON battles(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_battles_top ON battles(scenario_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBattle records a finished battle and returns its battle ID.
func (s *Store) SaveBattle(b Battle) (string, error) {
	if b.ScenarioID == "" {
		return "", errors.New("storage: battle without scenario")
	}
	if b.BattleID == "" {
		b.BattleID = uuid.NewString()
	}
	if b.Difficulty == "" {
		b.Difficulty = "normal"
	}

	_, err := s.db.Exec(
		`INSERT INTO battles
		 (battle_id, scenario_id, difficulty, friendly_won, rounds, survivors, enemies_defeated, score, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BattleID,
		b.ScenarioID,
		b.Difficulty,
		b.FriendlyWon,
		b.Rounds,
		b.Survivors,
		b.EnemiesDefeated,
		b.Score,
		int64(b.Duration.Round(time.Second)/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save battle: %w", err)
	}
	return b.BattleID, nil
}

const battleColumns = `id, battle_id, scenario_id, difficulty, friendly_won, rounds,
	survivors, enemies_defeated, score, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBattle(row scanner) (Battle, error) {
	var b Battle
	var secs int64
	var createdAt any
	err := row.Scan(
		&b.ID,
		&b.BattleID,
		&b.ScenarioID,
		&b.Difficulty,
		&b.FriendlyWon,
		&b.Rounds,
		&b.Survivors,
		&b.EnemiesDefeated,
		&b.Score,
		&secs,
		&createdAt,
	)
	if err != nil {
		return Battle{}, err
	}
	b.Duration = time.Duration(secs) * time.Second
	b.CreatedAt = parseTime(createdAt)
	return b, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryBattles(what, query string, args ...any) ([]Battle, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", what, err)
	}
	defer rows.Close()

	var battles []Battle
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		battles = append(battles, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return battles, nil
}

// BattleByID retrieves a battle by its battle ID. Returns nil when missing.
func (s *Store) BattleByID(battleID string) (*Battle, error) {
	row := s.db.QueryRow(`SELECT `+battleColumns+` FROM battles WHERE battle_id = ?`, battleID)
	b, err := scanBattle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}
	return &b, nil
}

// RecentBattles retrieves the most recent battles across all scenarios.
func (s *Store) RecentBattles(limit int) ([]Battle, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryBattles("recent battles",
		`SELECT `+battleColumns+`
		 FROM battles
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopScores retrieves the best N battles of a scenario by score.
func (s *Store) TopScores(scenarioID string, limit int) ([]Battle, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryBattles("scores",
		`SELECT `+battleColumns+`
		 FROM battles
		 WHERE scenario_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		scenarioID, limit,
	)
}

// ClearBattles deletes the history of one scenario.
func (s *Store) ClearBattles(scenarioID string) error {
	_, err := s.db.Exec("DELETE FROM battles WHERE scenario_id = ?", scenarioID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear battles: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Battles    int
	Wins       int
	BestScore  int
	AvgScore   float64
	AvgRounds  float64
	LastPlayed time.Time
}

// Losses returns the number of lost battles.
func (st ScenarioStats) Losses() int {
	return st.Battles - st.Wins
}

// WinRate returns Wins / Battles, or 0 without battles.
func (st ScenarioStats) WinRate() float64 {
	if st.Battles == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Battles)
}

const statsColumns = `COUNT(*), COALESCE(SUM(friendly_won), 0), COALESCE(MAX(score), 0),
	COALESCE(AVG(score), 0), COALESCE(AVG(rounds), 0), MAX(created_at)`

func scanStats(row scanner, st *ScenarioStats) error {
	var lastPlayed any
	if err := row.Scan(&st.Battles, &st.Wins, &st.BestScore, &st.AvgScore, &st.AvgRounds, &lastPlayed); err != nil {
		return err
	}
	st.LastPlayed = parseTime(lastPlayed)
	return nil
}

// ScenarioStats retrieves aggregated statistics for one scenario.
func (s *Store) ScenarioStats(scenarioID string) (*ScenarioStats, error) {
	st := &ScenarioStats{ScenarioID: scenarioID}
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM battles WHERE scenario_id = ?`, scenarioID)
	if err := scanStats(row, st); err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	return st, nil
}

// AllScenarioStats retrieves statistics for every scenario that has been played.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(`SELECT scenario_id, ` + statsColumns + ` FROM battles GROUP BY scenario_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastPlayed any
		if err := rows.Scan(&st.ScenarioID, &st.Battles, &st.Wins, &st.BestScore, &st.AvgScore, &st.AvgRounds, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.ScenarioID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
