package graph

// Universe holds the adjacency list of star systems connected by jump links.
type Universe struct {
	// Adj maps systemID -> list of neighboring systemIDs
	Adj map[string][]string
}

// NewUniverse creates an empty Universe with initialized maps.
func NewUniverse() *Universe {
	return &Universe{
		Adj: make(map[string][]string),
	}
}

// AddLink adds a bidirectional jump connection. Duplicate links collapse.
func (u *Universe) AddLink(from, to string) {
	if from == to {
		return
	}
	if !contains(u.Adj[from], to) {
		u.Adj[from] = append(u.Adj[from], to)
	}
	if !contains(u.Adj[to], from) {
		u.Adj[to] = append(u.Adj[to], from)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
