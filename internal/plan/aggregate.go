package plan

import (
	"sort"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/parse"
)

// UnprocessedMatrix derives the grouped-by-line matrix of machines that
// still await processing for the given check kind: instruction set, flag
// not yet checked. One column per production line letter, as many rows as
// the largest group, empty cells past a group's length. The matrix is
// recomputed in full on every call; there is no incremental index.
func UnprocessedMatrix(records []model.PlanRecord, kind model.CheckKind, lines string) [][]string {
	letters := []rune(lines)
	groups := make(map[string][]parse.MachineKey, len(letters))
	for i := range records {
		if !records[i].Awaiting(kind) {
			continue
		}
		key := parse.Key(records[i].MachineNo)
		groups[key.Line] = append(groups[key.Line], key)
	}

	height := 0
	for _, g := range groups {
		sort.Slice(g, func(a, b int) bool { return parse.Less(g[a], g[b]) })
		if len(g) > height {
			height = len(g)
		}
	}

	matrix := make([][]string, height)
	for r := range matrix {
		matrix[r] = make([]string, len(letters))
		for c, line := range letters {
			g := groups[string(line)]
			if r < len(g) {
				matrix[r][c] = g[r].Raw
			}
		}
	}
	return matrix
}

// LineHeaders expands the configured line set into matrix column headers.
func LineHeaders(lines string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, string(line))
	}
	return out
}
