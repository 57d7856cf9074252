package model

import (
	"math"
	"slices"
	"testing"
)

func TestJobQuery_Normalized(t *testing.T) {
	tests := []struct {
		name         string
		in           JobQuery
		wantPage     int
		wantPageSize int
	}{
		{"zero value", JobQuery{}, 1, DefaultPageSize},
		{"negative page", JobQuery{Page: -3, PageSize: 5}, 1, 5},
		{"kept", JobQuery{Page: 4, PageSize: 25}, 4, 25},
		{"capped", JobQuery{Page: 2, PageSize: MaxPageSize + 1}, 2, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if got.Page != tt.wantPage || got.PageSize != tt.wantPageSize {
				t.Errorf("Normalized() = page %d size %d, want page %d size %d",
					got.Page, got.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestJobQuery_NormalizedHugePage(t *testing.T) {
	for _, size := range []int{1, 3, DefaultPageSize, MaxPageSize} {
		q := JobQuery{Page: math.MaxInt, PageSize: size}.Normalized()
		offset := q.Offset()
		if offset < 0 || offset+q.PageSize < offset {
			t.Errorf("page size %d: offset %d overflows", size, offset)
		}
	}

	q := JobQuery{Page: 4611686018427387905, PageSize: 3}.Normalized()
	if q.Offset() < 0 {
		t.Errorf("offset %d is negative", q.Offset())
	}
}

func TestJobQuery_NormalizedKeepsFilters(t *testing.T) {
	q := JobQuery{Search: "go", Status: JobStatusArchived}.Normalized()
	if q.Search != "go" || q.Status != JobStatusArchived {
		t.Errorf("filters changed: %+v", q)
	}
}

func TestJobQuery_Offset(t *testing.T) {
	if got := (JobQuery{Page: 1, PageSize: 10}).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := (JobQuery{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Errorf("page 3 offset = %d, want 20", got)
	}
}

func TestJobPage_TotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}

	for _, tt := range tests {
		p := &JobPage{Total: tt.total, PageSize: tt.pageSize}
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d, size=%d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestJobStatus(t *testing.T) {
	if !JobStatusActive.Valid() || !JobStatusArchived.Valid() {
		t.Error("known statuses should be valid")
	}
	if JobStatus("paused").Valid() || JobStatus("").Valid() {
		t.Error("unknown statuses should be invalid")
	}
	if JobStatusActive.Toggled() != JobStatusArchived {
		t.Error("active should toggle to archived")
	}
	if JobStatusArchived.Toggled() != JobStatusActive {
		t.Error("archived should toggle to active")
	}
}

func TestJob_HasTag(t *testing.T) {
	job := &Job{Tags: []string{"go", "remote"}}
	if !job.HasTag("remote") {
		t.Error("expected tag 'remote'")
	}
	if job.HasTag("Remote") {
		t.Error("tags are case-sensitive")
	}
}

func TestJobBoard_InsertAndRemove(t *testing.T) {
	b := &JobBoard{}
	b.AppendJob("a")
	b.AppendJob("c")
	b.InsertJob("b", 1)
	b.InsertJob("z", 99)

	if want := []string{"a", "b", "c", "z"}; !slices.Equal(b.JobIDs, want) {
		t.Fatalf("JobIDs = %v, want %v", b.JobIDs, want)
	}
	if idx := b.IndexOf("c"); idx != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", idx)
	}

	if !b.RemoveJob("b") {
		t.Error("RemoveJob(b) should report true")
	}
	if b.RemoveJob("b") {
		t.Error("second RemoveJob(b) should report false")
	}
	if idx := b.IndexOf("b"); idx != -1 {
		t.Errorf("IndexOf(b) after removal = %d, want -1", idx)
	}
}
