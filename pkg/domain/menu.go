package domain

import "time"

// Menu link target values.
const (
	TargetSelf  = "_self"
	TargetBlank = "_blank"
)

// Menu grouping keys used by the site.
const (
	MenuMain   = "main"
	MenuFooter = "footer"
)

// MenuItem is a single navigation entry. Items form a hierarchy through
// ParentID; Children is populated only by the tree builder and never
// persisted.
type MenuItem struct {
	ID           int64       `json:"id"`
	MenuType     string      `json:"menuType"`
	Title        string      `json:"title"`
	URL          string      `json:"url"`
	Target       string      `json:"target"`
	ParentID     *int64      `json:"parentId"`
	SortOrder    int         `json:"sortOrder"`
	IsPublished  bool        `json:"isPublished"`
	IsVisible    bool        `json:"isVisible"`
	RequiresAuth bool        `json:"requiresAuth"`
	HideOnMobile bool        `json:"hideOnMobile"`
	CSSClass     string      `json:"cssClass"`
	Icon         string      `json:"icon"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Children     []*MenuItem `json:"children,omitempty"`
}

// MenuOrder is the (id, sortOrder, parentId) triple written back after a
// menu reorder. Nothing else about the item is touched by a reorder.
type MenuOrder struct {
	ID        int64  `json:"id"`
	SortOrder int    `json:"sortOrder"`
	ParentID  *int64 `json:"parentId"`
}
