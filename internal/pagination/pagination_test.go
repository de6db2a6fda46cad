package pagination

import "testing"

func TestPageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var p PageRequest
		p.Defaults()
		if p.Page != 1 || p.PageSize != 20 {
			t.Errorf("expected 1/20, got %d/%d", p.Page, p.PageSize)
		}
		if p.Offset() != 0 {
			t.Errorf("expected offset 0, got %d", p.Offset())
		}
	})

	t.Run("offset", func(t *testing.T) {
		p := PageRequest{Page: 3, PageSize: 10}
		if p.Offset() != 20 {
			t.Errorf("expected offset 20, got %d", p.Offset())
		}
	})
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 41)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected non-nil data slice")
	}
}
