package sqlite

import (
	"strings"
	"testing"
)

func TestQueryBuilder_Select(t *testing.T) {
	query, params, err := NewQueryBuilder().
		Select("content_items", "id", "title").
		Where("owner_id", "=", "alice").
		Where("status", "!=", "Published").
		OrderBy("target_date ASC").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "SELECT id, title FROM content_items WHERE owner_id = ? AND status != ? ORDER BY target_date ASC"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if len(params) != 2 || params[0] != "alice" || params[1] != "Published" {
		t.Errorf("params = %v", params)
	}
}

func TestQueryBuilder_InsertAndUpdate(t *testing.T) {
	query, params, err := NewQueryBuilder().Insert("t", []string{"a", "b"}, []interface{}{1, 2}).Build()
	if err != nil || query != "INSERT INTO t (a, b) VALUES (?, ?)" || len(params) != 2 {
		t.Errorf("Insert() = %q, %v, %v", query, params, err)
	}

	query, params, err = NewQueryBuilder().Update("t", []string{"a", "b"}, []interface{}{1, 2}).Where("id", "=", "x").Build()
	if err != nil || query != "UPDATE t SET a = ?, b = ? WHERE id = ?" || len(params) != 3 {
		t.Errorf("Update() = %q, %v, %v", query, params, err)
	}
}

func TestQueryBuilder_RejectsUnsafeInput(t *testing.T) {
	tests := []struct {
		name  string
		build func() *QueryBuilder
	}{
		{"table name", func() *QueryBuilder { return NewQueryBuilder().Select("items; DROP TABLE x") }},
		{"column name", func() *QueryBuilder { return NewQueryBuilder().Select("t", "id", "1=1 --") }},
		{"where column", func() *QueryBuilder { return NewQueryBuilder().Delete("t").Where("id OR 1", "=", 1) }},
		{"operator", func() *QueryBuilder { return NewQueryBuilder().Delete("t").Where("id", "LIKE", "%") }},
		{"order term", func() *QueryBuilder { return NewQueryBuilder().Select("t").OrderBy("id; DROP") }},
		{"order direction", func() *QueryBuilder { return NewQueryBuilder().Select("t").OrderBy("id SIDEWAYS") }},
		{"mismatched values", func() *QueryBuilder { return NewQueryBuilder().Insert("t", []string{"a"}, nil) }},
		{"long name", func() *QueryBuilder { return NewQueryBuilder().Delete(strings.Repeat("a", 65)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.build().Build(); err == nil {
				t.Error("Build() should fail")
			}
		})
	}
}

type recordingLogger struct {
	warnings int
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.warnings++
}

func TestValidateID(t *testing.T) {
	logger := &recordingLogger{}

	if err := ValidateID("2f0c3c1e-1f7a-4a55-9a2e-7a8c1d9b0a11", logger); err != nil {
		t.Errorf("uuid rejected: %v", err)
	}
	if logger.warnings != 0 {
		t.Errorf("uuid produced %d warnings", logger.warnings)
	}

	if err := ValidateID("x'; --", logger); err != nil {
		t.Errorf("suspicious id should be accepted: %v", err)
	}
	if logger.warnings != 1 {
		t.Errorf("warnings = %d, want 1", logger.warnings)
	}

	for _, bad := range []string{"", strings.Repeat("x", 129), "a\x00b"} {
		if err := ValidateID(bad, nil); err == nil {
			t.Errorf("ValidateID(%q) should fail", bad)
		}
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("notes", strings.Repeat("n", 64*1024)); err != nil {
		t.Errorf("limit-sized text rejected: %v", err)
	}
	if err := ValidateText("notes", strings.Repeat("n", 64*1024+1)); err == nil {
		t.Error("oversized text accepted")
	}
}
