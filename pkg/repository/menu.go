package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/svbf/portal/pkg/domain"
)

// ErrTitleRequired is returned when a menu item is written without a title.
// This is the only menu failure surfaced to API callers as their own fault.
var ErrTitleRequired = errors.New("menu item title is required")

// MenuRepository handles menu item database operations
type MenuRepository struct {
	db *sqlx.DB
}

// menuItemSQL represents a menu item row for SQL operations
type menuItemSQL struct {
	ID           int64     `db:"id"`
	MenuType     string    `db:"menu_type"`
	Title        string    `db:"title"`
	URL          string    `db:"url"`
	Target       string    `db:"target"`
	ParentID     *int64    `db:"parent_id"`
	SortOrder    int       `db:"sort_order"`
	IsPublished  bool      `db:"is_published"`
	IsVisible    bool      `db:"is_visible"`
	RequiresAuth bool      `db:"requires_auth"`
	HideOnMobile bool      `db:"hide_on_mobile"`
	CSSClass     string    `db:"css_class"`
	Icon         string    `db:"icon"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(database *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: database}
}

// Create inserts a new menu item. A zero sort order is replaced with the
// next free position among its (menu_type, parent_id) siblings.
func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrTitleRequired
	}
	if item.MenuType == "" {
		item.MenuType = domain.MenuMain
	}
	if item.Target == "" {
		item.Target = domain.TargetSelf
	}
	if item.SortOrder <= 0 {
		next, err := r.NextSortOrder(ctx, item.MenuType, item.ParentID)
		if err != nil {
			return err
		}
		item.SortOrder = next
	}

	query := `
		INSERT INTO menu_items (menu_type, title, url, target, parent_id, sort_order,
		                        is_published, is_visible, requires_auth, hide_on_mobile, css_class, icon)
		VALUES (:menu_type, :title, :url, :target, :parent_id, :sort_order,
		        :is_published, :is_visible, :requires_auth, :hide_on_mobile, :css_class, :icon)
	`
	result, err := r.db.NamedExecContext(ctx, query, r.toSQL(item))
	if err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	item.ID = id
	return nil
}

// Get retrieves a menu item by ID
func (r *MenuRepository) Get(ctx context.Context, id int64) (*domain.MenuItem, error) {
	var row menuItemSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM menu_items WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return r.toDomain(&row), nil
}

// List retrieves menu items of one menu type as a flat list ordered by
// sort_order, ties broken by insertion order. publishedOnly additionally
// filters on the publish and visibility flags.
func (r *MenuRepository) List(ctx context.Context, menuType string, publishedOnly bool) ([]*domain.MenuItem, error) {
	query := "SELECT * FROM menu_items WHERE menu_type = ?"
	if publishedOnly {
		query += " AND is_published = 1 AND is_visible = 1"
	}
	query += " ORDER BY sort_order, id"

	var rows []menuItemSQL
	if err := r.db.SelectContext(ctx, &rows, query, menuType); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	items := make([]*domain.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = r.toDomain(&row)
	}
	return items, nil
}

// Update rewrites all editable fields of a menu item
func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return ErrTitleRequired
	}

	query := `
		UPDATE menu_items
		SET menu_type = :menu_type, title = :title, url = :url, target = :target,
		    parent_id = :parent_id, sort_order = :sort_order,
		    is_published = :is_published, is_visible = :is_visible,
		    requires_auth = :requires_auth, hide_on_mobile = :hide_on_mobile,
		    css_class = :css_class, icon = :icon, updated_at = datetime('now')
		WHERE id = :id
	`
	res, err := r.db.NamedExecContext(ctx, query, r.toSQL(item))
	if err != nil {
		return fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("menu item %d not found", item.ID)
	}
	return nil
}

// Delete removes a menu item, promoting its children to root
func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE menu_items SET parent_id = NULL WHERE parent_id = ?", id); err != nil {
		return fmt.Errorf("promote children of menu item %d: %w", id, err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	return nil
}

// NextSortOrder computes the next free position among the (menuType,
// parentID) sibling group, 1 when the group is empty.
func (r *MenuRepository) NextSortOrder(ctx context.Context, menuType string, parentID *int64) (int, error) {
	var next int
	query := "SELECT COALESCE(MAX(sort_order), 0) + 1 FROM menu_items WHERE menu_type = ? AND parent_id IS ?"
	if err := r.db.GetContext(ctx, &next, query, menuType, parentID); err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	return next, nil
}

// ApplyReorder persists a set of (id, sortOrder, parentId) triples, touching
// nothing else about the items. Each update is keyed by its own id, so the
// whole operation is idempotent. Lock errors are retried with backoff.
func (r *MenuRepository) ApplyReorder(ctx context.Context, orders []domain.MenuOrder) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	for _, order := range orders {
		order := order
		err := retrier.Do(ctx, func() error {
			query := `
				UPDATE menu_items
				SET sort_order = ?, parent_id = ?, updated_at = datetime('now')
				WHERE id = ?
			`
			if _, err := r.db.ExecContext(ctx, query, order.SortOrder, order.ParentID, order.ID); err != nil {
				if isLockError(err) {
					return err // retry
				}
				return &criticalError{err: fmt.Errorf("reorder menu item %d: %w", order.ID, err)}
			}
			return nil
		}, &criticalError{})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MenuRepository) toSQL(item *domain.MenuItem) *menuItemSQL {
	return &menuItemSQL{
		ID:           item.ID,
		MenuType:     item.MenuType,
		Title:        item.Title,
		URL:          item.URL,
		Target:       item.Target,
		ParentID:     item.ParentID,
		SortOrder:    item.SortOrder,
		IsPublished:  item.IsPublished,
		IsVisible:    item.IsVisible,
		RequiresAuth: item.RequiresAuth,
		HideOnMobile: item.HideOnMobile,
		CSSClass:     item.CSSClass,
		Icon:         item.Icon,
	}
}

func (r *MenuRepository) toDomain(row *menuItemSQL) *domain.MenuItem {
	return &domain.MenuItem{
		ID:           row.ID,
		MenuType:     row.MenuType,
		Title:        row.Title,
		URL:          row.URL,
		Target:       row.Target,
		ParentID:     row.ParentID,
		SortOrder:    row.SortOrder,
		IsPublished:  row.IsPublished,
		IsVisible:    row.IsVisible,
		RequiresAuth: row.RequiresAuth,
		HideOnMobile: row.HideOnMobile,
		CSSClass:     row.CSSClass,
		Icon:         row.Icon,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
