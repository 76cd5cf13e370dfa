package ladder

import (
	"testing"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
)

func TestEvaluate_DerivesFromTotals(t *testing.T) {
	th := gamemath.Default().Thresholds
	scores := []Score{{0, 0}, {2, 1}, {5, 3}}
	grid := Evaluate(scores, th)
	if len(grid) != 3 {
		t.Fatalf("rows = %d", len(grid))
	}
	for i, s := range scores {
		for j, thr := range th {
			want := s.Total() >= thr.Goals
			if grid[i][j] != want {
				t.Errorf("cell[%d][%d] = %v, want %v", i, j, grid[i][j], want)
			}
		}
	}
}

func TestRowColumnFull(t *testing.T) {
	grid := [][]bool{
		{true, true, true},
		{true, false, false},
		{true, true, false},
	}
	if !RowFull(grid, 0) || RowFull(grid, 1) || RowFull(grid, 5) {
		t.Error("RowFull wrong")
	}
	if !ColumnFull(grid, 0) || ColumnFull(grid, 1) || ColumnFull(grid, 3) {
		t.Error("ColumnFull wrong")
	}
	if Full(grid) {
		t.Error("partial grid reported full")
	}
	if Full(nil) {
		t.Error("empty grid reported full")
	}
	if !Full([][]bool{{true}, {true}}) {
		t.Error("filled grid not full")
	}
}
