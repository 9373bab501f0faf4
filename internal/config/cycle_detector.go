package config

import (
	"sort"

	"github.com/sarvind1/tat-calculator/internal/expr"
)

// color marks DFS node state for the standard white/grey/black cycle check.
type color int

const (
	white color = iota
	grey
	black
)

// detectStaticCycle builds a graph over the stage ids that are syntactically
// visible at the root of each preceding_stage expression — ids guarded
// behind a conditional are invisible here and are instead caught by the
// resolver's runtime visiting-set guard (§4.1 step 2, §9).
func detectStaticCycle(stages []StageDescriptor) []string {
	graph := make(map[string][]string, len(stages))
	ids := make([]string, 0, len(stages))

	for _, s := range stages {
		ids = append(ids, s.ID)
		if s.PrecedingStage == "" {
			continue
		}
		node, err := expr.Parse(s.PrecedingStage)
		if err != nil {
			continue
		}
		graph[s.ID] = expr.StaticStageIDs(node)
	}
	sort.Strings(ids)

	colors := make(map[string]color, len(stages))
	var stack []string
	var cycle []string

	var dfs func(string) bool
	dfs = func(node string) bool {
		colors[node] = grey
		stack = append(stack, node)

		for _, dep := range graph[node] {
			switch colors[dep] {
			case grey:
				idx := indexOf(stack, dep)
				if idx >= 0 {
					cycle = append([]string{}, stack[idx:]...)
					cycle = append(cycle, dep)
				}
				return true
			case white:
				if dfs(dep) {
					return true
				}
			}
		}

		colors[node] = black
		stack = stack[:len(stack)-1]
		return false
	}

	for _, id := range ids {
		if colors[id] != white {
			continue
		}
		if dfs(id) {
			break
		}
	}

	return cycle
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
