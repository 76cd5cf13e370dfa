package ladder

import "github.com/Ashenafi-pixel/goal-ladder/gamemath"

// Evaluate derives the grid: cell [i][j] is filled when match i's combined goals reach threshold j.
// The grid is never stored; recompute it from scores whenever it is needed.
func Evaluate(scores []Score, thresholds []gamemath.Threshold) [][]bool {
	grid := make([][]bool, len(scores))
	for i, s := range scores {
		total := s.Total()
		row := make([]bool, len(thresholds))
		for j, t := range thresholds {
			row[j] = total >= t.Goals
		}
		grid[i] = row
	}
	return grid
}

// RowFull reports whether every cell in row i is filled.
func RowFull(grid [][]bool, i int) bool {
	if i < 0 || i >= len(grid) || len(grid[i]) == 0 {
		return false
	}
	for _, cell := range grid[i] {
		if !cell {
			return false
		}
	}
	return true
}

// ColumnFull reports whether column j is filled in every row.
func ColumnFull(grid [][]bool, j int) bool {
	if len(grid) == 0 {
		return false
	}
	for _, row := range grid {
		if j < 0 || j >= len(row) || !row[j] {
			return false
		}
	}
	return true
}

// Full reports whether the whole board is filled. An empty grid is never full.
func Full(grid [][]bool) bool {
	if len(grid) == 0 {
		return false
	}
	for i := range grid {
		if !RowFull(grid, i) {
			return false
		}
	}
	return true
}
