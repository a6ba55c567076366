package utils

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/core"
)

// InitializeSQLiteDB opens (or creates) the SQLite DB and applies the findings
// schema. Any previous database at dbPath is removed first; the database is a
// per-run report artifact, not durable state.
func InitializeSQLiteDB(dbPath string) (*sql.DB, error) {

	if err := DeleteFileIfExists(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// One-shot bulk load; durability of the report DB does not matter.
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA synchronous = OFF;")

	createStmt := `CREATE TABLE IF NOT EXISTS Findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		Path TEXT,
		Line INTEGER,
		Codepoint TEXT,
		Character TEXT,
		RepoName TEXT,
		Properties TEXT
	);`

	if _, err := db.Exec(createStmt); err != nil {
		return nil, fmt.Errorf("failed to create findings table: %w", err)
	}

	return db, nil
}

func InsertFindings(db *sql.DB, findings []core.Finding) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO Findings (Path, Line, Codepoint, Character, RepoName, Properties)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, finding := range findings {
		propertiesJSON, err := json.Marshal(finding.Properties)
		if err != nil {
			log.Printf("Failed to marshal properties for %s:%d: %v", finding.Path, finding.Line, err)
			propertiesJSON = []byte("{}")
		}
		if _, err = stmt.Exec(
			finding.Path,
			finding.Line,
			finding.Codepoint,
			finding.Character,
			finding.RepoName,
			string(propertiesJSON),
		); err != nil {
			return fmt.Errorf("failed to insert finding %s:%d: %w", finding.Path, finding.Line, err)
		}
	}

	return nil
}

// ProcessFindingsIncrementally drains the repository iterator into the
// database one batch at a time.
func ProcessFindingsIncrementally(db *sql.DB, repository core.FindingRepository) error {
	iterator := repository.NewIterator()
	for iterator.HasNext() {
		findingSet, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next finding set: %w", err)
		}
		if err := InsertFindings(db, findingSet.Findings); err != nil {
			return err
		}
	}
	return nil
}
