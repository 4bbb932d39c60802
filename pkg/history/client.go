package history

import "database/sql"

type Client struct {
	DB *sql.DB

	Store string
}

// DBRow is one recorded run.
type DBRow struct {
	Id                int
	ScanID            string
	Input             string
	Timestamp         string
	Packages          int
	Dependencies      int
	Files             int
	Vulnerabilities   int
	LicenseViolations int
	VulnViolations    int
	Passed            bool
}

// Violations is the total of both violation counts.
func (r *DBRow) Violations() int {
	return r.LicenseViolations + r.VulnViolations
}
