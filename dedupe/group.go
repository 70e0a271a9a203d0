package dedupe

// GroupDuplicates unions pairwise matches into transitive groups: if A~B and
// B~C, one group holds A, B, and C even when A and C never matched directly.
// Recipients without any match appear in no group. Group order and member
// order follow first appearance in the match list, so output is reproducible.
func GroupDuplicates(matches []Match) [][]Recipient {
	if len(matches) == 0 {
		return [][]Recipient{}
	}

	parent := map[string]string{}
	var find func(id string) string
	find = func(id string) string {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	// First pass: build the disjoint sets, remembering each recipient once
	// in first-seen order.
	order := []string{}
	byID := map[string]Recipient{}
	note := func(r Recipient) {
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = r
			order = append(order, r.ID)
			parent[r.ID] = r.ID
		}
	}
	for _, m := range matches {
		note(m.Recipient1)
		note(m.Recipient2)
		union(m.Recipient1.ID, m.Recipient2.ID)
	}

	// Second pass: collect members by root, keeping first-seen order for
	// both groups and their members.
	groups := [][]Recipient{}
	groupIdx := map[string]int{}
	for _, id := range order {
		root := find(id)
		gi, ok := groupIdx[root]
		if !ok {
			gi = len(groups)
			groupIdx[root] = gi
			groups = append(groups, []Recipient{})
		}
		groups[gi] = append(groups[gi], byID[id])
	}
	return groups
}
