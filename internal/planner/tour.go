package planner

import "math"

// entryPoint returns where the tool enters a cell: the start of the first
// pattern segment, or the cell centre when the pattern is empty.
func entryPoint(cell Cell, pattern []Segment) Point {
	if len(pattern) > 0 {
		return pattern[0].Start
	}
	return cell.Center()
}

// exitPoint returns where the tool leaves a cell: the end of the last pattern
// segment, or the cell centre when the pattern is empty.
func exitPoint(cell Cell, pattern []Segment) Point {
	if len(pattern) > 0 {
		return pattern[len(pattern)-1].End
	}
	return cell.Center()
}

// orderCells chooses the cell visiting order. Construction is greedy nearest
// neighbour over exit-to-entry distances, starting from the cell with the
// lexicographically smallest (left, bottom) corner; the result is then refined
// with bounded first-improvement 2-opt.
func (p *Planner) orderCells(cells []Cell, patterns [][]Segment) []int {
	if len(cells) == 0 {
		return nil
	}
	if len(cells) == 1 {
		return []int{cells[0].ID}
	}

	start := cells[0]
	for _, c := range cells[1:] {
		if c.Left < start.Left || (c.Left == start.Left && c.Bottom < start.Bottom) {
			start = c
		}
	}

	visited := make(map[int]bool, len(cells))
	order := make([]int, 0, len(cells))
	order = append(order, start.ID)
	visited[start.ID] = true
	exit := exitPoint(start, patterns[start.ID])

	for len(order) < len(cells) {
		nearest := Cell{ID: -1}
		minDistance := math.Inf(1)
		for _, c := range cells {
			if visited[c.ID] {
				continue
			}
			// Strict less-than keeps the first candidate on ties.
			if d := exit.DistanceTo(entryPoint(c, patterns[c.ID])); d < minDistance {
				minDistance = d
				nearest = c
			}
		}
		order = append(order, nearest.ID)
		visited[nearest.ID] = true
		exit = exitPoint(nearest, patterns[nearest.ID])
	}

	return p.twoOptImprove(order, cells, patterns)
}

// twoOptImprove refines the order with first-improvement 2-opt: scan all
// (i, j) pairs, reverse the sub-range [i, j), and adopt the first candidate
// whose total transition cost is strictly lower, then restart the scan. The
// loop stops after a full pass without improvement or after
// MaxTwoOptIterations accepted moves, whichever comes first.
func (p *Planner) twoOptImprove(order []int, cells []Cell, patterns [][]Segment) []int {
	lookup := make(map[int]Cell, len(cells))
	for _, c := range cells {
		lookup[c.ID] = c
	}

	best := append([]int(nil), order...)
	improved := true
	for iter := 0; improved && iter < MaxTwoOptIterations; iter++ {
		improved = false
	scan:
		for i := 1; i < len(best)-1; i++ {
			for j := i + 1; j < len(best); j++ {
				candidate := reverseRange(best, i, j)
				if p.orderCost(candidate, lookup, patterns) < p.orderCost(best, lookup, patterns) {
					best = candidate
					improved = true
					break scan
				}
			}
		}
	}
	return best
}

// reverseRange returns a copy of order with the sub-range [i, j) reversed.
func reverseRange(order []int, i, j int) []int {
	out := append([]int(nil), order...)
	for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
		out[lo], out[hi] = out[hi], out[lo]
	}
	return out
}

// orderCost is the total exit-to-entry transition distance of an order.
func (p *Planner) orderCost(order []int, lookup map[int]Cell, patterns [][]Segment) float64 {
	total := 0.0
	for i := 0; i < len(order)-1; i++ {
		current := lookup[order[i]]
		next := lookup[order[i+1]]
		total += exitPoint(current, patterns[current.ID]).
			DistanceTo(entryPoint(next, patterns[next.ID]))
	}
	return total
}
