package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique index
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite reports constraint failures as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// likePattern builds a case-insensitive LIKE pattern, escaping wildcards
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}

type countRow struct {
	Ref   string
	Total int64
}

func countsToMap(rows []countRow) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Ref] = row.Total
	}
	return out
}
