package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svbf/portal/pkg/domain"
)

func ptr(v int64) *int64 { return &v }

func item(id int64, parentID *int64, sortOrder int, title string) *domain.MenuItem {
	return &domain.MenuItem{ID: id, ParentID: parentID, SortOrder: sortOrder, Title: title, MenuType: domain.MenuMain}
}

func titles(level []*domain.MenuItem) []string {
	out := make([]string, len(level))
	for i, n := range level {
		out[i] = n.Title
	}
	return out
}

func TestBuildTree_Nesting(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 1, "Start"),
		item(2, nil, 2, "Tävlingar"),
		item(3, ptr(2), 1, "Kalender"),
		item(4, ptr(2), 2, "Resultat"),
		item(5, ptr(3), 1, "Extern kalender"),
	}

	roots := BuildTree(items)
	require.Len(t, roots, 2)
	assert.Equal(t, []string{"Start", "Tävlingar"}, titles(roots))

	require.Len(t, roots[1].Children, 2)
	assert.Equal(t, []string{"Kalender", "Resultat"}, titles(roots[1].Children))

	require.Len(t, roots[1].Children[0].Children, 1)
	assert.Equal(t, "Extern kalender", roots[1].Children[0].Children[0].Title)
}

func TestBuildTree_SortsEveryLevel(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 5, "Sist"),
		item(2, nil, 1, "Först"),
		item(3, ptr(2), 9, "Barn B"),
		item(4, ptr(2), 2, "Barn A"),
	}

	roots := BuildTree(items)
	require.Len(t, roots, 2)
	assert.Equal(t, []string{"Först", "Sist"}, titles(roots))
	assert.Equal(t, []string{"Barn A", "Barn B"}, titles(roots[0].Children))
}

func TestBuildTree_StableOnEqualSortOrder(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 1, "A"),
		item(2, nil, 1, "B"),
		item(3, nil, 1, "C"),
	}

	roots := BuildTree(items)
	assert.Equal(t, []string{"A", "B", "C"}, titles(roots), "ties keep input order")
}

func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 1, "Root"),
		item(2, ptr(99), 2, "Orphan"),
	}

	roots := BuildTree(items)
	require.Len(t, roots, 2)
	assert.Equal(t, []string{"Root", "Orphan"}, titles(roots))
}

func TestBuildTree_SelfParentBecomesRoot(t *testing.T) {
	items := []*domain.MenuItem{item(1, ptr(1), 1, "Själv")}
	roots := BuildTree(items)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTree_CycleDoesNotLoop(t *testing.T) {
	// A and B reference each other; neither can be reached from a root,
	// so both drop out of the rendered tree. Degraded, not fatal.
	items := []*domain.MenuItem{
		item(1, nil, 1, "Root"),
		item(2, ptr(3), 2, "A"),
		item(3, ptr(2), 3, "B"),
	}

	roots := BuildTree(items)
	require.Len(t, roots, 1)
	assert.Equal(t, "Root", roots[0].Title)
}

func TestBuildTree_Idempotent(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 2, "B"),
		item(2, nil, 1, "A"),
		item(3, ptr(1), 1, "Barn"),
	}

	first := BuildTree(items)
	second := BuildTree(items)
	assert.Equal(t, first, second)
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	child := item(2, ptr(1), 1, "Barn")
	parent := item(1, nil, 1, "Rot")
	items := []*domain.MenuItem{parent, child}

	BuildTree(items)

	assert.Nil(t, parent.Children, "input items must stay untouched")
	assert.Nil(t, child.Children)
}

func TestBuildTree_FreshChildrenSlices(t *testing.T) {
	items := []*domain.MenuItem{
		item(1, nil, 1, "A"),
		item(2, nil, 2, "B"),
		item(3, ptr(1), 1, "Barn av A"),
	}

	roots := BuildTree(items)
	require.Len(t, roots, 2)
	assert.Len(t, roots[0].Children, 1)
	assert.Empty(t, roots[1].Children, "sibling must not share the children slice")
}

func TestFlatten(t *testing.T) {
	roots := BuildTree([]*domain.MenuItem{
		item(10, nil, 3, "B"),
		item(20, nil, 1, "A"),
		item(30, ptr(10), 7, "B-barn2"),
		item(40, ptr(10), 2, "B-barn1"),
	})

	orders := Flatten(roots)
	require.Len(t, orders, 4)

	// depth-first, renumbered from 1 per sibling group
	assert.Equal(t, domain.MenuOrder{ID: 20, SortOrder: 1, ParentID: nil}, orders[0])
	assert.Equal(t, domain.MenuOrder{ID: 10, SortOrder: 2, ParentID: nil}, orders[1])
	require.NotNil(t, orders[2].ParentID)
	assert.Equal(t, int64(10), *orders[2].ParentID)
	assert.Equal(t, int64(40), orders[2].ID)
	assert.Equal(t, 1, orders[2].SortOrder)
	assert.Equal(t, int64(30), orders[3].ID)
	assert.Equal(t, 2, orders[3].SortOrder)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
