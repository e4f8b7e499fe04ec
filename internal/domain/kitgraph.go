package domain

// KitGraph maps a kit id to the ids of its direct components.
type KitGraph map[string][]string

// AddEdge records that kit contains component, ignoring repeats.
func (g KitGraph) AddEdge(kit, component string) {
	for _, c := range g[kit] {
		if c == component {
			return
		}
	}
	g[kit] = append(g[kit], component)
}

// FindCycle runs a depth-first search from start and returns the first
// cycle it meets as a path that begins and ends on the same id, or nil.
func (g KitGraph) FindCycle(start string) []string {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var dfs func(id string) []string
	dfs = func(id string) []string {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, child := range g[id] {
			if onStack[child] {
				for i, p := range path {
					if p == child {
						cycle := append([]string{}, path[i:]...)
						return append(cycle, child)
					}
				}
			}
			if !visited[child] {
				if cycle := dfs(child); cycle != nil {
					return cycle
				}
			}
		}

		onStack[id] = false
		path = path[:len(path)-1]
		return nil
	}
	return dfs(start)
}
