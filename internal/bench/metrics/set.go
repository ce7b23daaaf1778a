package metrics

// Set is a membership-only view of a ground-truth list.
type Set map[string]struct{}

func NewSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// intersectTopK counts distinct members of the first k ranked ids that are in relevant.
func intersectTopK(ranked []string, relevant Set, k int) int {
	n := min(k, len(ranked))
	seen := make(map[string]struct{}, n)
	for _, id := range ranked[:n] {
		if relevant.Contains(id) {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
