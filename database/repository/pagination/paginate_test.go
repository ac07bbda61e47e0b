package pagination

import "testing"

func TestMakePaginateClampsInputs(t *testing.T) {
	p := MakePaginate(0, 0)

	if p.Page != MinPage {
		t.Fatalf("expected page %d got %d", MinPage, p.Page)
	}

	if p.Limit != DefaultLimit {
		t.Fatalf("expected limit %d got %d", DefaultLimit, p.Limit)
	}

	p = MakePaginate(2, MaxLimit+1)
	if p.Limit != DefaultLimit {
		t.Fatalf("oversized limit should fall back to %d, got %d", DefaultLimit, p.Limit)
	}
}

func TestPaginateOffset(t *testing.T) {
	p := MakePaginate(3, 10)

	if p.GetOffset() != 20 {
		t.Fatalf("expected offset 20 got %d", p.GetOffset())
	}

	p.Offset = 5
	if p.GetOffset() != 5 {
		t.Fatalf("explicit offset should win, got %d", p.GetOffset())
	}
}

func TestPaginateHasMoreBoundary(t *testing.T) {
	p := MakePaginate(2, 10)
	p.SetNumItems(20)

	// offset 10 + limit 10 == total 20: the window ends exactly at the total.
	if p.HasMore() {
		t.Fatalf("expected no further page at the exact boundary")
	}

	p.SetNumItems(21)
	if !p.HasMore() {
		t.Fatalf("expected another page when one row remains")
	}
}

func TestMakePagination(t *testing.T) {
	p := MakePaginate(1, 2)
	p.SetNumItems(5)

	page := MakePagination[string]([]string{"a", "b"}, p)

	if page.Total != 5 || page.Page != 1 || page.Limit != 2 || !page.HasMore {
		t.Fatalf("metadata mismatch: %+v", page)
	}
}

func TestHydratePagination(t *testing.T) {
	p := MakePaginate(1, 2)
	p.SetNumItems(2)

	source := MakePagination[int]([]int{1, 2}, p)
	page := HydratePagination(source, func(n int) int { return n * 10 })

	if len(page.Data) != 2 || page.Data[0] != 10 || page.Data[1] != 20 {
		t.Fatalf("mapper mismatch: %v", page.Data)
	}

	if page.Total != source.Total || page.HasMore != source.HasMore {
		t.Fatalf("metadata should carry over")
	}
}
