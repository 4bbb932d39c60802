package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const runTable = `CREATE TABLE IF NOT EXISTS runs (
	"ID" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
	"ScanID" TEXT UNIQUE,
	"Input" TEXT,
	"Timestamp" TEXT,
	"Packages" INTEGER,
	"Dependencies" INTEGER,
	"Files" INTEGER,
	"Vulnerabilities" INTEGER,
	"LicenseViolations" INTEGER,
	"VulnViolations" INTEGER,
	"Passed" INTEGER);`

// Init opens the database at cli.Store, creating it when needed.
func (cli *Client) Init() error {
	if cli.Store == "" {
		return fmt.Errorf("no history database configured")
	}

	folder := filepath.Dir(cli.Store)
	if !exists(folder) {
		if err := os.MkdirAll(folder, os.FileMode(0755)); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite3", cli.Store)
	if err != nil {
		return err
	}

	if _, err = db.Exec(runTable); err != nil {
		db.Close()
		return fmt.Errorf("create runs table: %w", err)
	}

	cli.DB = db
	return nil
}

func (cli *Client) Close() error {
	if cli.DB == nil {
		return nil
	}
	return cli.DB.Close()
}

func (cli *Client) insert(r *DBRow) error {
	sqlRow := `INSERT INTO runs 
				  ("ScanID", "Input", "Timestamp", "Packages", "Dependencies", "Files",
				   "Vulnerabilities", "LicenseViolations", "VulnViolations", "Passed")
				VALUES
				  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := cli.DB.Exec(sqlRow, r.ScanID, r.Input, r.Timestamp,
		r.Packages, r.Dependencies, r.Files,
		r.Vulnerabilities, r.LicenseViolations, r.VulnViolations, r.Passed)

	return err
}

// QueryLatestByInput returns the most recent run recorded for input, or nil.
func (cli *Client) QueryLatestByInput(input string) (*DBRow, error) {
	rows, err := cli.queryByInput(input, 1)
	if err != nil || len(rows) < 1 {
		return nil, err
	}

	return rows[0], nil
}

// queryByInput returns up to limit runs for input, newest first.
func (cli *Client) queryByInput(input string, limit int) ([]*DBRow, error) {
	dbRows := []*DBRow{}

	sqlRow := `SELECT * FROM runs WHERE input = ? ORDER BY id DESC LIMIT ?`
	rows, err := cli.DB.Query(sqlRow, input, limit)
	if err != nil {
		return dbRows, err
	}

	defer rows.Close()

	for rows.Next() {
		r := &DBRow{}
		err = rows.Scan(&r.Id, &r.ScanID, &r.Input, &r.Timestamp,
			&r.Packages, &r.Dependencies, &r.Files,
			&r.Vulnerabilities, &r.LicenseViolations, &r.VulnViolations, &r.Passed)

		if err != nil {
			continue
		}

		dbRows = append(dbRows, r)
	}

	if err = rows.Err(); err != nil {
		return dbRows, err
	}

	return dbRows, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsExist(err) {
			return true
		}

		return false
	}
	return true
}
