// Package menu transforms flat, parent-referencing menu item lists into
// display-ready trees and back into persistable order triples.
package menu

import (
	"sort"

	"github.com/svbf/portal/pkg/domain"
)

// BuildTree nests a flat menu item list by ParentID and returns the roots.
// An item whose parent is missing from the input set, including a nil
// ParentID or a dangling reference, becomes a root. Resolution is a single
// parent lookup per item, never a chain walk, so cyclic input cannot loop
// it; members of a true cycle simply drop out of the rendered tree.
// Children at every level are freshly allocated and sorted ascending by
// SortOrder, stable on ties. The input list and its items are not mutated.
func BuildTree(items []*domain.MenuItem) []*domain.MenuItem {
	byID := make(map[int64]*domain.MenuItem, len(items))
	nodes := make([]*domain.MenuItem, 0, len(items))
	for _, item := range items {
		node := *item
		node.Children = []*domain.MenuItem{}
		byID[node.ID] = &node
		nodes = append(nodes, &node)
	}

	roots := make([]*domain.MenuItem, 0, len(nodes))
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := byID[*node.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortLevel(roots)
	return roots
}

// sortLevel orders one sibling group and recurses into children. Only nodes
// reachable from the roots are visited.
func sortLevel(level []*domain.MenuItem) {
	sort.SliceStable(level, func(i, j int) bool { return level[i].SortOrder < level[j].SortOrder })
	for _, node := range level {
		sortLevel(node.Children)
	}
}

// Flatten walks an edited tree depth-first and emits the (id, sortOrder,
// parentId) triples to persist. Sort order is renumbered from 1 within each
// sibling group, so a drag-and-drop edit always lands in a clean sequence.
// Applying the same result twice yields the same stored state.
func Flatten(roots []*domain.MenuItem) []domain.MenuOrder {
	var out []domain.MenuOrder
	var walk func(level []*domain.MenuItem, parentID *int64)
	walk = func(level []*domain.MenuItem, parentID *int64) {
		for i, node := range level {
			out = append(out, domain.MenuOrder{ID: node.ID, SortOrder: i + 1, ParentID: parentID})
			id := node.ID
			walk(node.Children, &id)
		}
	}
	walk(roots, nil)
	return out
}
