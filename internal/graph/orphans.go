package graph

// Orphans returns the ids of items with no incident links of any kind,
// incoming or outgoing, in ascending order.
func Orphans(g *Graph) []string {
	orphans := []string{}
	for _, id := range g.ItemIDs() {
		if len(g.AllNeighbors(id)) == 0 {
			orphans = append(orphans, id)
		}
	}
	return orphans
}
