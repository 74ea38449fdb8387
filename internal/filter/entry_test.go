package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakmoor/destrier/internal/history"
)

func testEntry(start, goal string, path []string) *history.Entry {
	return &history.Entry{
		ID:    "11111111-aaaa-bbbb-cccc-dddddddddddd",
		Start: start,
		Goal:  goal,
		Moves: len(path) - 1,
		Path:  path,
	}
}

func TestMatches_NoFilters(t *testing.T) {
	criteria := &Criteria{}
	entry := testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"})

	assert.True(t, criteria.Matches(entry))
	assert.False(t, criteria.HasFilters())
}

func TestMatches_Square(t *testing.T) {
	entry := testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"})

	tests := []struct {
		square string
		want   bool
	}{
		{"D4", true},
		{"C6", true},
		{"G8", true},
		{"A1", false},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			criteria := &Criteria{Square: tt.square}
			assert.Equal(t, tt.want, criteria.Matches(entry))
		})
	}
}

func TestMatches_Endpoint(t *testing.T) {
	entry := testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"})

	tests := []struct {
		endpoint string
		want     bool
	}{
		{"D4", true},
		{"G8", true},
		{"C6", false}, // interior square is not an endpoint
		{"A1", false},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			criteria := &Criteria{Endpoint: tt.endpoint}
			assert.Equal(t, tt.want, criteria.Matches(entry))
		})
	}
}

func TestMatches_MoveBounds(t *testing.T) {
	threeMoves := testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"})
	zeroMoves := testEntry("E5", "E5", []string{"E5"})

	assert.True(t, (&Criteria{MinMoves: 3}).Matches(threeMoves))
	assert.False(t, (&Criteria{MinMoves: 4}).Matches(threeMoves))
	assert.True(t, (&Criteria{MaxMoves: 3}).Matches(threeMoves))
	assert.False(t, (&Criteria{MaxMoves: 2}).Matches(threeMoves))
	assert.True(t, (&Criteria{MinMoves: 2, MaxMoves: 4}).Matches(threeMoves))

	// MinMoves of zero is "no filter", so zero-move entries still pass
	assert.True(t, (&Criteria{}).Matches(zeroMoves))
	assert.False(t, (&Criteria{MinMoves: 1}).Matches(zeroMoves))
}

func TestMatches_CombinedCriteria(t *testing.T) {
	entry := testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"})

	matching := &Criteria{Square: "C6", Endpoint: "D4", MinMoves: 2, MaxMoves: 3}
	assert.True(t, matching.Matches(entry))

	// One failing criterion rejects the entry
	failing := &Criteria{Square: "C6", Endpoint: "D4", MinMoves: 4}
	assert.False(t, failing.Matches(entry))
}

func TestApply_PreservesOrder(t *testing.T) {
	entries := []*history.Entry{
		testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"}),
		testEntry("A1", "C2", []string{"A1", "C2"}),
		testEntry("A1", "H8", []string{"A1", "C2", "E3", "G4", "H6", "F7", "H8"}),
	}

	criteria := &Criteria{Endpoint: "A1"}
	matched := criteria.Apply(entries)

	assert.Len(t, matched, 2)
	assert.Equal(t, "C2", matched[0].Goal)
	assert.Equal(t, "H8", matched[1].Goal)
}

func TestApply_NoFiltersReturnsAll(t *testing.T) {
	entries := []*history.Entry{
		testEntry("D4", "G8", []string{"D4", "C6", "E7", "G8"}),
	}

	criteria := &Criteria{}
	assert.Equal(t, entries, criteria.Apply(entries))
}

func TestHasFilters(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"empty", Criteria{}, false},
		{"square", Criteria{Square: "D4"}, true},
		{"endpoint", Criteria{Endpoint: "A1"}, true},
		{"min moves", Criteria{MinMoves: 1}, true},
		{"max moves", Criteria{MaxMoves: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.HasFilters())
		})
	}
}
