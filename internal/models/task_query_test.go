package models

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		wantPages   int
		wantNext    bool
		wantPrev    bool
	}{
		{"first of three", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact multiple", 2, 20, 40, 2, false, true},
		{"empty result", 1, 20, 0, 0, false, false},
		{"single item", 1, 20, 1, 1, false, false},
		{"page past the end", 9, 20, 45, 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("totalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("hasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.HasPrevious != tt.wantPrev {
				t.Errorf("hasPrevious = %v, want %v", p.HasPrevious, tt.wantPrev)
			}
			if p.Total != tt.total || p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("echo fields = %+v", p)
			}
		})
	}
}
