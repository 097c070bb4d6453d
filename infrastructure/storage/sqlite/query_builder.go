// ABOUTME: Safe SQL query builder for the SQLite content repository
// ABOUTME: Enforces parameterization and validates identifiers and ids

package sqlite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Logger is the subset of interfaces.Logger the validators need
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	maxIDLength     = 128
	maxTextLength   = 64 * 1024
)

var allowedOperators = map[string]bool{
	"=":  true,
	"!=": true,
	">":  true,
	"<":  true,
	">=": true,
	"<=": true,
}

// QueryBuilder builds parameterized statements. Invalid identifiers are
// recorded and reported by Build instead of being silently dropped.
type QueryBuilder struct {
	query  strings.Builder
	params []interface{}
	where  bool
	err    error
}

// NewQueryBuilder creates a new query builder instance
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{params: make([]interface{}, 0)}
}

func (qb *QueryBuilder) checkName(names ...string) bool {
	for _, name := range names {
		if err := validateName(name); err != nil {
			if qb.err == nil {
				qb.err = err
			}
			return false
		}
	}
	return true
}

// validateName validates table/column names to prevent SQL injection
func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	return nil
}

// Select builds a SELECT over columns of table
func (qb *QueryBuilder) Select(table string, columns ...string) *QueryBuilder {
	if !qb.checkName(table) || !qb.checkName(columns...) {
		return qb
	}
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}
	qb.query.WriteString("SELECT " + cols + " FROM " + table)
	return qb
}

// Where adds a parameterized condition, joined with AND
func (qb *QueryBuilder) Where(column, operator string, value interface{}) *QueryBuilder {
	if !qb.checkName(column) {
		return qb
	}
	if !allowedOperators[operator] {
		qb.err = fmt.Errorf("operator not allowed: %s", operator)
		return qb
	}
	if qb.where {
		qb.query.WriteString(" AND ")
	} else {
		qb.query.WriteString(" WHERE ")
		qb.where = true
	}
	qb.query.WriteString(column + " " + operator + " ?")
	qb.params = append(qb.params, value)
	return qb
}

// OrderBy appends an ORDER BY clause. Expressions are limited to column
// names optionally followed by ASC or DESC.
func (qb *QueryBuilder) OrderBy(terms ...string) *QueryBuilder {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 || !qb.checkName(fields[0]) {
			if qb.err == nil {
				qb.err = fmt.Errorf("invalid order term: %q", term)
			}
			return qb
		}
		if len(fields) == 2 && fields[1] != "ASC" && fields[1] != "DESC" {
			qb.err = fmt.Errorf("invalid order direction: %q", term)
			return qb
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	qb.query.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	return qb
}

// Insert builds an INSERT of columns with one placeholder per value
func (qb *QueryBuilder) Insert(table string, columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		qb.err = errors.New("column and value counts differ")
		return qb
	}
	if !qb.checkName(table) || !qb.checkName(columns...) {
		return qb
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	qb.query.WriteString("INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")")
	qb.params = append(qb.params, values...)
	return qb
}

// Update builds an UPDATE setting columns to values
func (qb *QueryBuilder) Update(table string, columns []string, values []interface{}) *QueryBuilder {
	if len(columns) != len(values) {
		qb.err = errors.New("column and value counts differ")
		return qb
	}
	if !qb.checkName(table) || !qb.checkName(columns...) {
		return qb
	}
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = col + " = ?"
	}
	qb.query.WriteString("UPDATE " + table + " SET " + strings.Join(sets, ", "))
	qb.params = append(qb.params, values...)
	return qb
}

// Delete builds a DELETE query
func (qb *QueryBuilder) Delete(table string) *QueryBuilder {
	if !qb.checkName(table) {
		return qb
	}
	qb.query.WriteString("DELETE FROM " + table)
	return qb
}

// Build returns the built query and parameters
func (qb *QueryBuilder) Build() (string, []interface{}, error) {
	if qb.err != nil {
		return "", nil, qb.err
	}
	return qb.query.String(), qb.params, nil
}

// ValidateID rejects ids that cannot be stored safely
func ValidateID(id string, logger Logger) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if len(id) > maxIDLength {
		return fmt.Errorf("id too long: max %d characters", maxIDLength)
	}
	if strings.Contains(id, "\x00") {
		return errors.New("id cannot contain null bytes")
	}

	// Parameterization handles these; they are only worth a warning
	for _, pattern := range []string{"--", "/*", ";", "'", "\""} {
		if strings.Contains(id, pattern) && logger != nil {
			logger.Warn("Suspicious pattern detected in content id", map[string]interface{}{
				"pattern":    pattern,
				"id_length":  len(id),
				"id_preview": truncate(id),
			})
			break
		}
	}
	return nil
}

// ValidateText bounds free-text columns
func ValidateText(field, value string) error {
	if len(value) > maxTextLength {
		return fmt.Errorf("%s too large: max %d bytes", field, maxTextLength)
	}
	return nil
}

func truncate(s string) string {
	const maxPreview = 50
	if len(s) <= maxPreview {
		return s
	}
	return s[:maxPreview] + "..."
}
