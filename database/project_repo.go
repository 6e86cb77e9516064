package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velardesign/portfolio-backend/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// sortColumns whitelists the sortable keys as exposed on the wire and maps
// them onto their columns. Anything else falls back to createdAt.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"completedAt": "completed_at",
	"title":       "title",
	"likes":       "likes",
	"views":       "views",
	"featured":    "featured",
}

// ProjectFilter carries the listing parameters after parsing. Zero values
// mean "no filter" for the predicate fields and "use default" for the
// pagination fields.
type ProjectFilter struct {
	Category  string
	Statuses  []string
	Featured  *bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize clamps pagination and sorting to usable values. Garbage page or
// limit falls back to the defaults rather than erroring.
func (f *ProjectFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		f.SortBy = "createdAt"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

// apply adds the filter predicate to a query chain. List uses the same
// predicate for both the count and the page so total always reflects the
// full matching set.
func (f ProjectFilter) apply(q *gorm.DB) *gorm.DB {
	switch len(f.Statuses) {
	case 0:
		q = q.Where("status = ?", models.StatusPublished)
	case 1:
		q = q.Where("status = ?", f.Statuses[0])
	default:
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Featured != nil && *f.Featured {
		q = q.Where("featured = ?", true)
	}
	return q
}

// order builds the compound sort: the requested key first, newest next when
// the key is not already recency, and the identifier as a stable tiebreak so
// pages stay consistent across requests.
func (f ProjectFilter) order() string {
	primary := sortColumns[f.SortBy] + " " + f.SortOrder
	if sortColumns[f.SortBy] != "created_at" {
		primary += ", created_at desc"
	}
	return primary + ", id asc"
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// List returns one page of projects matching the filter plus the total count
// over the same predicate.
func (r *ProjectRepo) List(ctx context.Context, filter ProjectFilter) ([]models.Project, int, error) {
	filter.Normalize()

	var total int64
	if err := filter.apply(r.db.WithContext(ctx).Model(&models.Project{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Project{})).
		Order(filter.order()).
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, int(total), nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project into the database. Counters and timestamps
// are store-owned, so anything the caller put in those fields is discarded
// before the insert; the remaining defaults come from the model's
// BeforeCreate hook.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	project.Likes = 0
	project.Views = 0
	project.CreatedAt = time.Time{}
	project.UpdatedAt = time.Time{}
	return r.db.WithContext(ctx).Create(project).Error
}

// Patch applies the admin-editable columns of an edit to an existing
// project. Counters and createdAt are never touched, so a concurrent
// like or view between form load and save cannot be wiped by the edit.
func (r *ProjectRepo) Patch(ctx context.Context, id uuid.UUID, patch models.ProjectPatch) (*models.Project, error) {
	columns := patch.Columns()
	if len(columns) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a project from the database by id. Hard delete; there is
// no tombstone.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementViews adds one view and returns the new count. The increment is
// a single atomic UPDATE expression, never a read-modify-write from the
// caller, so concurrent views from different visitors never lose an update.
func (r *ProjectRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int, error) {
	return r.bumpCounter(ctx, id, "views", gorm.Expr("views + 1"))
}

// AddLikes applies a like delta (+1 on like, -1 on unlike) atomically and
// returns the new count. The count clamps at zero; an unlike on a project
// that was never liked cannot drive it negative.
func (r *ProjectRepo) AddLikes(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	return r.bumpCounter(ctx, id, "likes",
		gorm.Expr("CASE WHEN likes + ? < 0 THEN 0 ELSE likes + ? END", delta, delta))
}

// bumpCounter runs the counter UPDATE and reads the resulting value inside
// one transaction. Zero rows affected means the id never resolved and the
// store is untouched.
func (r *ProjectRepo) bumpCounter(ctx context.Context, id uuid.UUID, column string, expr clause.Expr) (int, error) {
	var value int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", id).UpdateColumn(column, expr)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Project{}).Where("id = ?", id).Select(column).Scan(&value).Error
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
