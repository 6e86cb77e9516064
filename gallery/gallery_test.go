package gallery_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velardesign/portfolio-backend/gallery"
	"github.com/velardesign/portfolio-backend/models"
)

// stubAPI fakes the portfolio endpoints with canned projects and injectable
// counter failures.
type stubAPI struct {
	mu        sync.Mutex
	projects  []models.Project
	likeFails bool
	viewFails bool
	likeCalls []bool
}

func newStubAPI(categories ...models.Category) *stubAPI {
	s := &stubAPI{}
	for i, category := range categories {
		s.projects = append(s.projects, models.Project{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Work %d", i+1),
			Category:    category,
			Description: "A project served by the stub API",
			Image:       "http://example.com/work.jpg",
			Status:      models.StatusPublished,
		})
	}
	return s
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", s.list)
	mux.HandleFunc("POST /projects/{id}/view", s.view)
	mux.HandleFunc("POST /projects/{id}/like", s.like)
	return mux
}

func (s *stubAPI) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 12
	}

	matching := []models.Project{}
	for _, p := range s.projects {
		if category == "" || category == "all" || string(p.Category) == category {
			matching = append(matching, p)
		}
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(matching) {
		start = len(matching)
	}
	if end > len(matching) {
		end = len(matching)
	}

	pages := 0
	if len(matching) > 0 {
		pages = (len(matching) + limit - 1) / limit
	}

	json.NewEncoder(w).Encode(map[string]any{
		"projects": matching[start:end],
		"pagination": map[string]int{
			"page":  page,
			"limit": limit,
			"total": len(matching),
			"pages": pages,
		},
	})
}

func (s *stubAPI) view(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.viewFails {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to update views"})
		return
	}

	idx := s.indexOf(r.PathValue("id"))
	if idx < 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Project not found"})
		return
	}
	s.projects[idx].Views++
	json.NewEncoder(w).Encode(map[string]int{"views": s.projects[idx].Views})
}

func (s *stubAPI) like(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.likeFails {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Failed to update likes"})
		return
	}

	idx := s.indexOf(r.PathValue("id"))
	if idx < 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Project not found"})
		return
	}

	var body struct {
		Liked bool `json:"liked"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	s.likeCalls = append(s.likeCalls, body.Liked)

	if body.Liked {
		s.projects[idx].Likes++
	} else if s.projects[idx].Likes > 0 {
		s.projects[idx].Likes--
	}
	json.NewEncoder(w).Encode(map[string]int{"likes": s.projects[idx].Likes})
}

func (s *stubAPI) recordedLikeCalls() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.likeCalls...)
}

func (s *stubAPI) failCounters(like, view bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likeFails = like
	s.viewFails = view
}

func (s *stubAPI) indexOf(id string) int {
	for i := range s.projects {
		if s.projects[i].ID.String() == id {
			return i
		}
	}
	return -1
}

func TestSetCategoryResetsAndFetches(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster, models.CategoryPoster, models.CategorySocial)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	assert.Len(t, g.Projects(), 2)

	require.NoError(t, g.SetCategory(context.Background(), "social"))
	projects := g.Projects()
	require.Len(t, projects, 1, "a category switch replaces the visible list")
	assert.Equal(t, models.CategorySocial, projects[0].Category)

	page, _, total := g.Pagination()
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, total)
}

func TestLoadMoreAppends(t *testing.T) {
	stub := newStubAPI(
		models.CategoryPoster, models.CategoryPoster, models.CategoryPoster,
		models.CategoryPoster, models.CategoryPoster,
	)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL, gallery.WithLimit(2))
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	assert.Len(t, g.Projects(), 2)

	require.NoError(t, g.LoadMore(context.Background()))
	assert.Len(t, g.Projects(), 4, "load more appends without resetting")

	require.NoError(t, g.LoadMore(context.Background()))
	assert.Len(t, g.Projects(), 5)

	// past the last page load more is a no-op
	require.NoError(t, g.LoadMore(context.Background()))
	assert.Len(t, g.Projects(), 5)

	page, pages, total := g.Pagination()
	assert.Equal(t, 3, page)
	assert.Equal(t, 3, pages)
	assert.Equal(t, 5, total)
}

func TestOpenProjectOptimisticView(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	id := g.Projects()[0].ID

	opened, err := g.OpenProject(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, opened.Views)
	assert.Equal(t, 1, g.Projects()[0].Views)
}

func TestOpenProjectKeepsBumpOnFailure(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	id := g.Projects()[0].ID

	stub.failCounters(false, true)
	opened, err := g.OpenProject(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, opened.Views, "the optimistic bump applies regardless of the round-trip outcome")
}

func TestToggleLikeOptimisticAndInverse(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	id := g.Projects()[0].ID

	require.NoError(t, g.ToggleLike(context.Background(), id))
	assert.True(t, g.Liked(id))
	assert.Equal(t, 1, g.Projects()[0].Likes)

	require.NoError(t, g.ToggleLike(context.Background(), id))
	assert.False(t, g.Liked(id))
	assert.Equal(t, 0, g.Projects()[0].Likes)

	// the wire calls carry the inverse of the prior local state
	assert.Equal(t, []bool{true, false}, stub.recordedLikeCalls())
}

func TestToggleLikeRevertsBothOnFailure(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster)
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	id := g.Projects()[0].ID

	stub.failCounters(true, false)
	err := g.ToggleLike(context.Background(), id)
	require.Error(t, err)

	// membership and count roll back together
	assert.False(t, g.Liked(id))
	assert.Equal(t, 0, g.Projects()[0].Likes)
}

func TestFetchFailureLeavesStateUntouched(t *testing.T) {
	stub := newStubAPI(models.CategoryPoster)
	srv := httptest.NewServer(stub.handler())

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "poster"))
	require.Len(t, g.Projects(), 1)

	srv.Close()
	err := g.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, g.Projects(), 1, "a failed fetch degrades to the unchanged visible state")
}

func TestGalleryURLShape(t *testing.T) {
	var captured string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{
			"projects":   []models.Project{},
			"pagination": map[string]int{"page": 1, "limit": 12, "total": 0, "pages": 0},
		})
	}))
	defer srv.Close()

	g := gallery.New(srv.URL)
	require.NoError(t, g.SetCategory(context.Background(), "branding"))

	for _, want := range []string{"category=branding", "status=published", "sortBy=featured", "sortOrder=desc"} {
		assert.True(t, strings.Contains(captured, want), "query %q should contain %q", captured, want)
	}
}
