package response

import "testing"

func TestCalculatePagination(t *testing.T) {
	cases := []struct {
		page, limit int
		total       int64
		wantPage    int
		wantLimit   int
		wantPages   int
	}{
		{1, 10, 25, 1, 10, 3},
		{2, 10, 20, 2, 10, 2},
		{1, 10, 0, 1, 10, 0},
		{0, 0, 5, 1, 10, 1},
		{-3, -1, 5, 1, 10, 1},
		{1, 500, 250, 1, 100, 3},
		{1, 3, 10, 1, 3, 4},
	}

	for _, tc := range cases {
		meta := CalculatePagination(tc.page, tc.limit, tc.total)
		if meta.CurrentPage != tc.wantPage {
			t.Errorf("page(%d,%d,%d): current = %d, want %d", tc.page, tc.limit, tc.total, meta.CurrentPage, tc.wantPage)
		}
		if meta.PerPage != tc.wantLimit {
			t.Errorf("page(%d,%d,%d): per_page = %d, want %d", tc.page, tc.limit, tc.total, meta.PerPage, tc.wantLimit)
		}
		if meta.TotalPages != tc.wantPages {
			t.Errorf("page(%d,%d,%d): pages = %d, want %d", tc.page, tc.limit, tc.total, meta.TotalPages, tc.wantPages)
		}
		if meta.Total != tc.total {
			t.Errorf("page(%d,%d,%d): total = %d, want %d", tc.page, tc.limit, tc.total, meta.Total, tc.total)
		}
	}
}
