package postgres

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

// likeEscaper escapes LIKE wildcards so user input is matched literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased %value% pattern for use with LOWER(col) LIKE ? ESCAPE '\'
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// whereContains adds a case-insensitive substring match on column
func whereContains(query *gorm.DB, column, value string) *gorm.DB {
	return query.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), containsPattern(value))
}

// ApplySessionFilters applies the report criteria to a session query.
// Absent criteria add nothing.
func ApplySessionFilters(query *gorm.DB, filters repositories.SessionFilters) *gorm.DB {
	if filters.Student != nil {
		query = whereContains(query, "student_name", *filters.Student)
	}
	if filters.Tutor != nil {
		query = whereContains(query, "tutor_name", *filters.Tutor)
	}
	if filters.Subject != nil {
		query = whereContains(query, "subject", *filters.Subject)
	}
	if filters.Duration != nil {
		query = whereContains(query, "duration", *filters.Duration)
	}
	if filters.Day != nil {
		query = query.Where("day = ?", *filters.Day)
	}
	if filters.Time != nil {
		query = query.Where("time = ?", *filters.Time)
	}
	return query
}

// translateError maps driver errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repositories.ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value")
}

// cacheKey derives a stable key from a filter struct
func cacheKey(prefix string, filters interface{}) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return prefix + "invalid"
	}
	sum := sha256.Sum256(data)
	return prefix + hex.EncodeToString(sum[:12])
}
