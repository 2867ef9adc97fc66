package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/svbf/portal/pkg/ai"
	"github.com/svbf/portal/pkg/domain"
	"github.com/svbf/portal/pkg/menu"
	"github.com/svbf/portal/pkg/repository"
)

// externalCompetitionsHandler serves the normalized external competition
// calendar. The feed service already degrades to fallback content, so this
// endpoint never returns an error for upstream trouble. An optional
// today=YYYY-MM-DD query pins the clock for previews.
func (s *Server) externalCompetitionsHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if todayStr := r.URL.Query().Get("today"); todayStr != "" {
		parsed, err := time.Parse("2006-01-02", todayStr)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid today parameter, expected YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
		now = parsed
	}

	result := s.feeds.Competitions(r.Context(), now)
	renderJSON(w, r, http.StatusOK, result)
}

// externalNewsHandler serves the top external news entries as a bare array
func (s *Server) externalNewsHandler(w http.ResponseWriter, r *http.Request) {
	news := s.feeds.News(r.Context(), time.Now())
	renderJSON(w, r, http.StatusOK, news)
}

// menuListHandler returns menu items of one menu type, flat by default or
// nested when tree=1. published=1 keeps only published, visible items.
func (s *Server) menuListHandler(w http.ResponseWriter, r *http.Request) {
	menuType := r.PathValue("type")
	publishedOnly := r.URL.Query().Get("published") == "1"

	items, err := s.menus.List(r.Context(), menuType, publishedOnly)
	if err != nil {
		log.Printf("[ERROR] failed to list menu %q: %v", menuType, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("tree") == "1" {
		renderJSON(w, r, http.StatusOK, menu.BuildTree(items))
		return
	}
	renderJSON(w, r, http.StatusOK, items)
}

// menuCreateHandler creates a menu item. A missing title is the caller's
// fault and the only validation error this surface produces.
func (s *Server) menuCreateHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.menus.Create(r.Context(), &item); err != nil {
		if errors.Is(err, repository.ErrTitleRequired) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] failed to create menu item: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusCreated, item)
}

// menuUpdateHandler rewrites a menu item identified by the path id
func (s *Server) menuUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid menu item ID"), http.StatusBadRequest)
		return
	}

	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	item.ID = id

	if err := s.menus.Update(r.Context(), &item); err != nil {
		if errors.Is(err, repository.ErrTitleRequired) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			renderError(w, r, err, http.StatusNotFound)
			return
		}
		log.Printf("[ERROR] failed to update menu item %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	updated, err := s.menus.Get(r.Context(), id)
	if err != nil {
		log.Printf("[ERROR] failed to reload menu item %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, updated)
}

// menuDeleteHandler removes a menu item; its children are promoted to root
func (s *Server) menuDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid menu item ID"), http.StatusBadRequest)
		return
	}

	if err := s.menus.Delete(r.Context(), id); err != nil {
		log.Printf("[ERROR] failed to delete menu item %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]int64{"deleted": id})
}

// reorderRequest carries a menu reorder either as explicit order triples or
// as an edited tree to flatten server-side.
type reorderRequest struct {
	Orders []domain.MenuOrder `json:"orders"`
	Tree   []*domain.MenuItem `json:"tree"`
}

// menuReorderHandler persists a reorder as (id, sortOrder, parentId)
// updates; nothing else about the items is touched
func (s *Server) menuReorderHandler(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	orders := req.Orders
	if len(orders) == 0 && len(req.Tree) > 0 {
		orders = menu.Flatten(req.Tree)
	}
	if len(orders) == 0 {
		renderError(w, r, fmt.Errorf("nothing to reorder"), http.StatusBadRequest)
		return
	}

	if err := s.menus.ApplyReorder(r.Context(), orders); err != nil {
		log.Printf("[ERROR] failed to apply menu reorder: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]int{"updated": len(orders)})
}

// imageRequest is the body for illustration generation
type imageRequest struct {
	Prompt string `json:"prompt"`
}

// imageGenerateHandler renders one illustration for the admin panel
func (s *Server) imageGenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		renderError(w, r, fmt.Errorf("prompt is required"), http.StatusBadRequest)
		return
	}

	image, err := s.images.Illustrate(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, ai.ErrDisabled) {
			renderError(w, r, err, http.StatusServiceUnavailable)
			return
		}
		log.Printf("[ERROR] image generation failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]string{"image": image})
}
