package models

import (
	"testing"
	"time"

	"libraryhub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var base = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func record(id uint, status domain.BorrowStatus, due time.Time) *BorrowRecord {
	return &BorrowRecord{ID: id, Status: status, BorrowDate: due.AddDate(0, 0, -14), DueDate: due}
}

func TestDaysOverdue(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		now  time.Time
		want int
	}{
		{"not yet due", base, base.Add(-time.Hour), 0},
		{"due right now", base, base, 0},
		{"less than a day late", base, base.Add(23 * time.Hour), 0},
		{"exactly one day late", base, base.Add(24 * time.Hour), 1},
		{"across a year boundary", time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 3},
		{"across a leap day", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record(1, domain.StatusBorrowed, tt.due)
			assert.Equal(t, tt.want, r.DaysOverdue(tt.now))
		})
	}
}

func TestIsOverdue(t *testing.T) {
	borrowed := record(1, domain.StatusBorrowed, base)
	returned := record(2, domain.StatusReturned, base)

	assert.False(t, borrowed.IsOverdue(base), "due date equal to now is not overdue")
	assert.True(t, borrowed.IsOverdue(base.Add(time.Nanosecond)))
	assert.False(t, returned.IsOverdue(base.AddDate(1, 0, 0)), "returned records are never overdue")
}

func TestBorrowRecordsViews(t *testing.T) {
	rs := BorrowRecords{
		record(1, domain.StatusReturned, base.AddDate(0, 0, -30)),
		record(2, domain.StatusBorrowed, base.AddDate(0, 0, -1)),
		record(3, domain.StatusBorrowed, base.AddDate(0, 0, 5)),
	}

	current := rs.Current()
	assert.Len(t, current, 2)
	assert.Equal(t, uint(2), current[0].ID)
	assert.Equal(t, uint(3), current[1].ID)

	assert.True(t, rs.AnyBorrowed())
	assert.True(t, rs.AnyOverdue(base))
	assert.False(t, rs.AnyOverdue(base.AddDate(0, 0, -2)))

	due := rs.DueBefore(base)
	assert.Len(t, due, 1)
	assert.Equal(t, uint(2), due[0].ID)

	assert.False(t, BorrowRecords{}.AnyBorrowed())
	assert.Empty(t, BorrowRecords(nil).Current())
}

func genRecords(t *rapid.T) BorrowRecords {
	n := rapid.IntRange(0, 20).Draw(t, "n")
	rs := make(BorrowRecords, n)
	for i := range rs {
		status := rapid.SampledFrom([]domain.BorrowStatus{domain.StatusBorrowed, domain.StatusReturned}).Draw(t, "status")
		offset := rapid.IntRange(-60*24, 60*24).Draw(t, "offsetHours")
		rs[i] = record(uint(i+1), status, base.Add(time.Duration(offset)*time.Hour))
	}
	return rs
}

func TestBorrowRecordsProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rs := genRecords(t)
		now := base.Add(time.Duration(rapid.IntRange(-60*24, 60*24).Draw(t, "nowHours")) * time.Hour)

		current := rs.Current()
		for _, r := range current {
			if !r.IsBorrowed() {
				t.Fatalf("Current returned record %d with status %s", r.ID, r.Status)
			}
		}
		if rs.AnyBorrowed() != (len(current) > 0) {
			t.Fatalf("AnyBorrowed disagrees with Current")
		}

		due := rs.DueBefore(now)
		if rs.AnyOverdue(now) != (len(due) > 0) {
			t.Fatalf("AnyOverdue disagrees with DueBefore")
		}
		for _, r := range due {
			if !r.IsBorrowed() || !r.DueDate.Before(now) {
				t.Fatalf("DueBefore returned record %d due %s at %s", r.ID, r.DueDate, now)
			}
			if got, want := r.DaysOverdue(now), int(now.Sub(r.DueDate).Hours())/24; got != want {
				t.Fatalf("DaysOverdue = %d, want %d", got, want)
			}
		}
	})
}

func TestMemberToResponse(t *testing.T) {
	m := &Member{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100"}
	rs := BorrowRecords{
		record(1, domain.StatusReturned, base.AddDate(0, 0, -10)),
		record(2, domain.StatusBorrowed, base.AddDate(0, 0, 3)),
	}

	resp := m.ToResponse(rs, base)
	assert.Equal(t, []uint{2}, resp.CurrentBorrows)
	assert.False(t, resp.HasOverdueBooks)

	resp = m.ToResponse(rs, base.AddDate(0, 0, 4))
	assert.True(t, resp.HasOverdueBooks)

	empty := m.ToResponse(nil, base)
	assert.NotNil(t, empty.CurrentBorrows)
	assert.Empty(t, empty.CurrentBorrows)
	assert.Equal(t, "Ada Lovelace", m.FullName())
}

func TestBookToResponse(t *testing.T) {
	year := 1843
	b := &Book{
		ID:              3,
		Title:           "Notes",
		ISBN:            "978-0000000001",
		PublicationYear: &year,
		Author:          &Author{ID: 9, Name: "Ada Lovelace"},
		Categories:      []Category{{ID: 1, Name: "Computing"}},
	}

	resp := b.ToResponse(false)
	assert.False(t, resp.Available)
	assert.Equal(t, &AuthorSummary{ID: 9, Name: "Ada Lovelace"}, resp.Author)
	assert.Len(t, resp.Categories, 1)
	assert.Equal(t, "Computing", resp.Categories[0].Name)
	assert.Equal(t, &year, resp.PublicationYear)
}
