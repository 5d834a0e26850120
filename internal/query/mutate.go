package query

// Mutation operations for programmatic query construction. The tree has no
// internal synchronization: callers that mutate a query after parsing must
// not evaluate it concurrently.

// Add appends item to the group's include list, or to its exclude list when
// exclude is true.
func (g *Group) Add(item Item, exclude bool) {
	if exclude {
		g.Exclude = append(g.Exclude, item)
		return
	}
	g.Include = append(g.Include, item)
}

// AddWithMode adds item like Add but first reconciles the group's mode.
// A group carries exactly one mode for its whole include list, so when the
// requested mode differs from the current one, the existing include items
// are demoted into an implicit child group keeping the old mode before the
// parent switches. Items that were combined under one mode stay combined.
// Exclude items are mode-independent and never trigger a promotion.
func (g *Group) AddWithMode(item Item, mode Mode, exclude bool) {
	if !exclude && mode != g.Mode {
		if len(g.Include) > 0 {
			child := &Group{Include: g.Include, Mode: g.Mode}
			g.Include = []Item{child}
		}
		g.Mode = mode
	}
	g.Add(item, exclude)
}

// Remove deletes every leaf filter structurally equal to f (same field,
// term and operator) from the group's include list, or from its exclude
// list when exclude is true. Nested groups are left untouched.
func (g *Group) Remove(f *Filter, exclude bool) {
	if exclude {
		g.Exclude = removeLeaf(g.Exclude, f)
		return
	}
	g.Include = removeLeaf(g.Include, f)
}

func removeLeaf(items []Item, f *Filter) []Item {
	kept := items[:0]
	for _, it := range items {
		if leaf, ok := it.(*Filter); ok && leaf.Equal(f) {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// Clone returns a deep copy of the group. Trees returned by the cached
// parse path are shared between callers; cloning yields a private copy
// that is safe to mutate.
func (g *Group) Clone() *Group {
	out := &Group{Mode: g.Mode}
	for _, it := range g.Include {
		out.Include = append(out.Include, cloneItem(it))
	}
	for _, it := range g.Exclude {
		out.Exclude = append(out.Exclude, cloneItem(it))
	}
	return out
}

func cloneItem(it Item) Item {
	switch v := it.(type) {
	case *Filter:
		c := *v
		return &c
	case *Group:
		return v.Clone()
	}
	return it
}
