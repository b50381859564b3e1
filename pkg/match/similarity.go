package match

import "github.com/agentstation/servicemap/pkg/constants"

// Similarity scores how well query occurs somewhere inside target.
//
// The score is 1 minus the approximate substring distance: the fewest edits
// turning query into any substring of target, divided by the query length,
// plus a penalty of start/DefaultLocationDistance for matches that begin
// late in target. The result is clamped to [0, 1].
func Similarity(query, target string) float64 {
	return similarity([]rune(Normalize(query)), []rune(Normalize(target)), constants.DefaultLocationDistance)
}

func similarity(q, t []rune, locationDistance int) float64 {
	if len(q) == 0 || len(t) == 0 {
		return 0
	}
	if string(q) == string(t) {
		return 1
	}
	s := 1 - distance(q, t, locationDistance)
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// distance runs a semi-global alignment of q against t. Leading and
// trailing characters of t are free; every query character must be
// accounted for. It returns the lowest normalized edit cost including the
// location penalty.
func distance(q, t []rune, locationDistance int) float64 {
	m, n := len(q), len(t)

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	prevStart := make([]int, n+1)
	currStart := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = 0
		prevStart[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		currStart[0] = 0
		for j := 1; j <= n; j++ {
			cost := 1
			if q[i-1] == t[j-1] {
				cost = 0
			}
			best, start := prev[j-1]+cost, prevStart[j-1]
			if v := prev[j] + 1; v < best {
				best, start = v, prevStart[j]
			}
			if v := curr[j-1] + 1; v < best {
				best, start = v, currStart[j-1]
			}
			curr[j], currStart[j] = best, start
		}
		prev, curr = curr, prev
		prevStart, currStart = currStart, prevStart
	}

	score := float64(prev[0]) / float64(m)
	for j := 1; j <= n; j++ {
		s := float64(prev[j]) / float64(m)
		if locationDistance > 0 {
			s += float64(prevStart[j]) / float64(locationDistance)
		}
		if s < score {
			score = s
		}
	}
	return score
}
