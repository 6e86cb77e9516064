// Package gallery is the view-layer client of the portfolio API. It holds
// the visible, possibly partial, list of projects under the active category
// filter, the session's liked-set, and applies optimistic counter updates
// that roll back as a unit when the server call fails.
package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/velardesign/portfolio-backend/models"
)

const defaultLimit = 12

type Option func(*Gallery)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gallery) {
		g.client = client
	}
}

// WithLimit sets the page size requested from the listing endpoint.
func WithLimit(limit int) Option {
	return func(g *Gallery) {
		g.limit = limit
	}
}

// Gallery tracks the gallery state for one browser-session equivalent. The
// liked-set is local only and resets when the Gallery is discarded.
type Gallery struct {
	client  *http.Client
	baseURL string
	logger  zerolog.Logger
	limit   int

	mu       sync.Mutex
	category string
	projects []models.Project
	liked    map[uuid.UUID]bool
	page     int
	pages    int
	total    int
}

func New(baseURL string, opts ...Option) *Gallery {
	g := &Gallery{
		client:  http.DefaultClient,
		baseURL: baseURL,
		logger:  log.With().Str("component", "gallery").Logger(),
		limit:   defaultLimit,
		liked:   make(map[uuid.UUID]bool),
		page:    1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type listResponse struct {
	Projects   []models.Project `json:"projects"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

// SetCategory switches the active filter, resets the visible list and the
// pagination cursor to page 1, and fetches the first page.
func (g *Gallery) SetCategory(ctx context.Context, category string) error {
	g.mu.Lock()
	g.category = category
	g.projects = nil
	g.page = 1
	g.pages = 0
	g.total = 0
	g.mu.Unlock()

	return g.fetch(ctx, 1, false)
}

// Refresh refetches the first page under the current filter, replacing the
// visible list.
func (g *Gallery) Refresh(ctx context.Context) error {
	return g.fetch(ctx, 1, false)
}

// LoadMore appends the next page to the visible list. It is a no-op once
// the last page is visible.
func (g *Gallery) LoadMore(ctx context.Context) error {
	g.mu.Lock()
	if g.page >= g.pages {
		g.mu.Unlock()
		return nil
	}
	next := g.page + 1
	g.mu.Unlock()

	return g.fetch(ctx, next, true)
}

// fetch retrieves one page and either appends it or replaces the visible
// list. A failed fetch leaves the current state untouched.
func (g *Gallery) fetch(ctx context.Context, page int, appendPage bool) error {
	g.mu.Lock()
	params := url.Values{}
	if g.category != "" {
		params.Set("category", g.category)
	}
	params.Set("status", string(models.StatusPublished))
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(g.limit))
	// featured work surfaces first, newest within each group next
	params.Set("sortBy", "featured")
	params.Set("sortOrder", "desc")
	g.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/projects?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	var list listResponse
	if err := g.do(req, &list); err != nil {
		g.logger.Error().Err(err).Int("page", page).Msg("Failed to fetch projects")
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if appendPage {
		g.projects = append(g.projects, list.Projects...)
	} else {
		g.projects = list.Projects
	}
	g.page = list.Pagination.Page
	g.pages = list.Pagination.Pages
	g.total = list.Pagination.Total
	return nil
}

// Projects returns a snapshot of the visible list.
func (g *Gallery) Projects() []models.Project {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Project, len(g.projects))
	copy(out, g.projects)
	return out
}

// Liked reports whether the project was liked in this session.
func (g *Gallery) Liked(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.liked[id]
}

// Pagination returns the current cursor, the page count, and the total
// number of matching projects.
func (g *Gallery) Pagination() (page, pages, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.page, g.pages, g.total
}

// OpenProject records one view for a detail open. The local count bumps
// immediately; the server round-trip reconciles it on success and the bump
// stays either way, each open is a discrete view event.
func (g *Gallery) OpenProject(ctx context.Context, id uuid.UUID) (models.Project, error) {
	g.mu.Lock()
	idx := g.indexOf(id)
	if idx < 0 {
		g.mu.Unlock()
		return models.Project{}, fmt.Errorf("project %s not in gallery", id)
	}
	g.projects[idx].Views++
	opened := g.projects[idx]
	g.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.viewURL(id), nil)
	if err != nil {
		return opened, err
	}

	var counted struct {
		Views int `json:"views"`
	}
	if err := g.do(req, &counted); err != nil {
		g.logger.Error().Err(err).Str("projectID", id.String()).Msg("Failed to track view")
		return opened, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if idx := g.indexOf(id); idx >= 0 {
		g.projects[idx].Views = counted.Views
		opened = g.projects[idx]
	}
	return opened, nil
}

// ToggleLike flips the session's liked state for a project. The liked-set
// membership and the displayed count move together: both are applied
// optimistically before the call and both are reverted together when the
// call fails, so the displayed count cannot drift from the membership flag.
func (g *Gallery) ToggleLike(ctx context.Context, id uuid.UUID) error {
	g.mu.Lock()
	prev := g.liked[id]
	liked := !prev
	delta := g.applyLike(id, liked)
	g.mu.Unlock()

	revert := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.setLiked(id, prev)
		g.addLikes(id, -delta)
	}

	body, err := json.Marshal(map[string]bool{"liked": liked})
	if err != nil {
		revert()
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.likeURL(id), bytes.NewReader(body))
	if err != nil {
		revert()
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var counted struct {
		Likes int `json:"likes"`
	}
	if err := g.do(req, &counted); err != nil {
		g.logger.Error().Err(err).Str("projectID", id.String()).Msg("Failed to toggle like")
		revert()
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if idx := g.indexOf(id); idx >= 0 {
		g.projects[idx].Likes = counted.Likes
	}
	return nil
}

// applyLike mutates membership and count as one unit and returns the count
// delta actually applied, so a rollback undoes exactly what happened even
// when the local count clamped at zero. Caller holds the lock.
func (g *Gallery) applyLike(id uuid.UUID, liked bool) int {
	g.setLiked(id, liked)
	if liked {
		return g.addLikes(id, 1)
	}
	return g.addLikes(id, -1)
}

// setLiked updates the session liked-set. Caller holds the lock.
func (g *Gallery) setLiked(id uuid.UUID, liked bool) {
	if liked {
		g.liked[id] = true
	} else {
		delete(g.liked, id)
	}
}

// addLikes shifts the displayed count, clamping at zero, and returns the
// delta actually applied. Caller holds the lock.
func (g *Gallery) addLikes(id uuid.UUID, delta int) int {
	idx := g.indexOf(id)
	if idx < 0 {
		return 0
	}
	next := g.projects[idx].Likes + delta
	if next < 0 {
		next = 0
	}
	applied := next - g.projects[idx].Likes
	g.projects[idx].Likes = next
	return applied
}

// indexOf returns the position of a project in the visible list. Caller
// holds the lock.
func (g *Gallery) indexOf(id uuid.UUID) int {
	for i := range g.projects {
		if g.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Gallery) viewURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/projects/%s/view", g.baseURL, id)
}

func (g *Gallery) likeURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/projects/%s/like", g.baseURL, id)
}

// do executes the request and decodes a 2xx JSON response into out.
func (g *Gallery) do(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if out == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
