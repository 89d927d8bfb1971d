package store

import (
	"regexp"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN trims quotes and whitespace. A lib/pq style key=value list has
// its spacing collapsed and gets sslmode=disable when none is given; URLs and
// SQLite paths are returned as they are.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" || !isKeyValueDSN(s) {
		return s
	}

	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// IsPostgres reports whether dsn targets PostgreSQL rather than a SQLite file.
func IsPostgres(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	return isKeyValueDSN(dsn)
}

// Dialector picks the GORM driver for dsn.
func Dialector(raw string) gorm.Dialector {
	dsn := NormalizeDSN(raw)
	if IsPostgres(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func isKeyValueDSN(s string) bool {
	return !strings.Contains(s, "://") && kvPairRegex.MatchString(s)
}
