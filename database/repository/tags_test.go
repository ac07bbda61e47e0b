package repository

import (
	"errors"
	"testing"

	"github.com/webfolio/api/database"
)

func TestTagsUpsertReusesExistingRow(t *testing.T) {
	conn := makeTestConnection(t)
	tags := Tags{DB: conn}

	first, err := tags.Upsert(conn.Sql(), "React")
	if err != nil {
		t.Fatalf("first upsert err: %v", err)
	}

	second, err := tags.Upsert(conn.Sql(), "React")
	if err != nil {
		t.Fatalf("second upsert err: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same row, got %d and %d", first.ID, second.ID)
	}

	var total int64
	if err = conn.Sql().Model(&database.Tag{}).Count(&total).Error; err != nil {
		t.Fatalf("count err: %v", err)
	}

	if total != 1 {
		t.Fatalf("expected 1 tag got %d", total)
	}
}

func TestTagsUpsertSlugifiesName(t *testing.T) {
	conn := makeTestConnection(t)
	tags := Tags{DB: conn}

	tag, err := tags.Upsert(conn.Sql(), "  Machine Learning  ")
	if err != nil {
		t.Fatalf("upsert err: %v", err)
	}

	if tag.Name != "Machine Learning" {
		t.Fatalf("expected trimmed name got [%s]", tag.Name)
	}

	if tag.Slug != "machine-learning" {
		t.Fatalf("expected machine-learning got %s", tag.Slug)
	}
}

func TestTagsUpsertRejectsEmptyName(t *testing.T) {
	conn := makeTestConnection(t)
	tags := Tags{DB: conn}

	if _, err := tags.Upsert(conn.Sql(), "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation got %v", err)
	}
}

func TestTagsFindBy(t *testing.T) {
	conn := makeTestConnection(t)
	tags := Tags{DB: conn}

	if _, err := tags.Upsert(conn.Sql(), "DevOps"); err != nil {
		t.Fatalf("upsert err: %v", err)
	}

	if found := tags.FindBy("DEVOPS"); found == nil {
		t.Fatalf("slug lookup should ignore case")
	}

	if found := tags.FindBy("missing"); found != nil {
		t.Fatalf("unknown slug should come back nil")
	}
}
