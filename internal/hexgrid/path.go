package hexgrid

// GetPath finds a shortest route from start to end using breadth-first
// search over hex adjacency. A neighbor is expanded only if it is free or
// it is the destination itself, so a path may end on an occupied cell.
//
// The returned path excludes start and ends with end. It is empty when
// start == end or when no route exists; len(path) is the movement cost.
func (g *Grid) GetPath(start, end Cell) []Cell {
	if start == end || !g.InBounds(start) || !g.InBounds(end) {
		return []Cell{}
	}

	cameFrom := map[Cell]Cell{start: start}
	queue := []Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == end {
			return reconstruct(cameFrom, start, end)
		}

		for _, n := range g.Neighbors(current) {
			if _, seen := cameFrom[n]; seen {
				continue
			}
			if n != end && g.IsCellOccupied(n) {
				continue
			}
			cameFrom[n] = current
			queue = append(queue, n)
		}
	}
	return []Cell{}
}

// reconstruct walks the parent map back from end and returns start-exclusive steps.
func reconstruct(cameFrom map[Cell]Cell, start, end Cell) []Cell {
	path := []Cell{}
	for c := end; c != start; c = cameFrom[c] {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Reachable returns every free cell reachable from start within maxSteps,
// mapped to its step cost. The start cell is not included.
func (g *Grid) Reachable(start Cell, maxSteps int) map[Cell]int {
	result := make(map[Cell]int)
	if maxSteps <= 0 || !g.InBounds(start) {
		return result
	}

	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if dist[current] == maxSteps {
			continue
		}
		for _, n := range g.Neighbors(current) {
			if _, seen := dist[n]; seen || g.IsCellOccupied(n) {
				continue
			}
			dist[n] = dist[current] + 1
			result[n] = dist[n]
			queue = append(queue, n)
		}
	}
	return result
}

// NearestFree returns the closest unoccupied cell to c (c itself if free),
// searching outward ring by ring. ok is false when the board is full.
func (g *Grid) NearestFree(c Cell) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	seen := map[Cell]bool{c: true}
	queue := []Cell{c}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if !g.IsCellOccupied(current) {
			return current, true
		}
		for _, n := range g.Neighbors(current) {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return Cell{}, false
}
