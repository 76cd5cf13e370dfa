package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	goalladder "github.com/Ashenafi-pixel/goal-ladder"
	"github.com/Ashenafi-pixel/goal-ladder/games"
)

const schema = `
CREATE TABLE IF NOT EXISTS ladder_matches (
	match_id     TEXT PRIMARY KEY,
	competition  TEXT NOT NULL,
	home_id      TEXT NOT NULL,
	home_name    TEXT NOT NULL,
	home_players TEXT NOT NULL DEFAULT '',
	away_id      TEXT NOT NULL,
	away_name    TEXT NOT NULL,
	away_players TEXT NOT NULL DEFAULT '',
	enabled      BOOLEAN NOT NULL DEFAULT true,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	file := flag.String("file", "", "Path to a catalog YAML file (competitions, teams, matches)")
	disable := flag.Bool("disable-missing", false, "Disable matches in the table that the file does not list")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing required -file argument")
		os.Exit(1)
	}
	if err := run(*file, *disable); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, disableMissing bool) error {
	db, err := goalladder.GetDB()
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if db == nil {
		return goalladder.ErrNoDB
	}
	_, matches, err := games.ParseFile(path)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create ladder_matches: %w", err)
	}

	err = goalladder.InTx(ctx, db, func(tx *sql.Tx) error {
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			if err := upsertMatch(ctx, tx, m); err != nil {
				return fmt.Errorf("upsert %s: %w", m.ID, err)
			}
			ids = append(ids, m.ID)
		}
		if disableMissing {
			return disableOthers(ctx, tx, ids)
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d matches from %s\n", len(matches), path)
	return nil
}

// upsertMatch inserts or refreshes one ladder_matches row and re-enables it.
func upsertMatch(ctx context.Context, tx *sql.Tx, m games.Match) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ladder_matches (match_id, competition, home_id, home_name, home_players, away_id, away_name, away_players, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		ON CONFLICT (match_id) DO UPDATE SET
			competition = EXCLUDED.competition,
			home_id = EXCLUDED.home_id,
			home_name = EXCLUDED.home_name,
			home_players = EXCLUDED.home_players,
			away_id = EXCLUDED.away_id,
			away_name = EXCLUDED.away_name,
			away_players = EXCLUDED.away_players,
			enabled = true,
			updated_at = CURRENT_TIMESTAMP`,
		m.ID, m.Competition,
		m.Home.ID, m.Home.Name, games.JoinPlayers(m.Home.Players),
		m.Away.ID, m.Away.Name, games.JoinPlayers(m.Away.Players),
	)
	return err
}

func disableOthers(ctx context.Context, tx *sql.Tx, keep []string) error {
	rows, err := tx.QueryContext(ctx, `SELECT match_id FROM ladder_matches WHERE enabled = true`)
	if err != nil {
		return err
	}
	listed := make(map[string]bool, len(keep))
	for _, id := range keep {
		listed[id] = true
	}
	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		if !listed[id] {
			stale = append(stale, id)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for _, id := range stale {
		if _, err := tx.ExecContext(ctx, `UPDATE ladder_matches SET enabled = false, updated_at = CURRENT_TIMESTAMP WHERE match_id = $1`, id); err != nil {
			return fmt.Errorf("disable %s: %w", id, err)
		}
	}
	return nil
}
