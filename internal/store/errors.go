package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation recognises unique-index failures from every supported driver.
// TranslateError covers most of them; the message checks catch drivers that do not translate.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL 1062
		strings.Contains(msg, "SQLSTATE 23505") || // PostgreSQL
		strings.Contains(msg, "UNIQUE constraint failed") // SQLite
}
