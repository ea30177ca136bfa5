package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectPatch holds a partial update; unset fields keep their stored value.
type ProjectPatch struct {
	Title       utils.Optional[string]
	Location    utils.Optional[string]
	Year        utils.Optional[int]
	Description utils.Optional[string]
	Images      utils.Optional[[]string]
	Video       utils.Optional[string]
}

// Validate reports a patch that would blank a required field.
func (p ProjectPatch) Validate() error {
	_, err := projectUpdates(p)
	return err
}

type ProjectRepo interface {
	FindAll(ctx context.Context) ([]entity.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	Create(ctx context.Context, project *entity.Project) error
	UpdateByID(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*entity.Project, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
}

type ProjectRepository struct {
	db    *gorm.DB
	cache *listCache
}

func NewProjectRepository(db *gorm.DB, cache *listCache) *ProjectRepository {
	return &ProjectRepository{db: db, cache: cache}
}

func (r *ProjectRepository) FindAll(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if r.cache.get(ctx, projectListKey, &projects) {
		return projects, nil
	}

	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	r.cache.set(ctx, projectListKey, projects)
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translateError(err)
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	if err := validateProject(project); err != nil {
		return err
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Images == nil {
		project.Images = datatypes.JSONSlice[string]{}
	}

	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	r.cache.invalidate(ctx, projectListKey)
	return nil
}

func (r *ProjectRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*entity.Project, error) {
	updates, err := projectUpdates(patch)
	if err != nil {
		return nil, err
	}

	project, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return project, nil
	}

	if err := r.db.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
		return nil, translateError(err)
	}
	r.cache.invalidate(ctx, projectListKey)
	return r.FindByID(ctx, id)
}

func (r *ProjectRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	r.cache.invalidate(ctx, projectListKey)
	return project, nil
}

func validateProject(project *entity.Project) error {
	var missing []string
	if strings.TrimSpace(project.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(project.Location) == "" {
		missing = append(missing, "location")
	}
	if project.Year == 0 {
		missing = append(missing, "year")
	}
	if strings.TrimSpace(project.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return missingFields(missing...)
	}
	return nil
}

func projectUpdates(patch ProjectPatch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	var missing []string

	setRequiredString(updates, &missing, "title", patch.Title)
	setRequiredString(updates, &missing, "location", patch.Location)
	setRequiredString(updates, &missing, "description", patch.Description)

	if patch.Year.Set {
		if patch.Year.Null || patch.Year.Value == 0 {
			missing = append(missing, "year")
		} else {
			updates["year"] = patch.Year.Value
		}
	}

	if patch.Images.Set {
		images := datatypes.JSONSlice[string]{}
		if !patch.Images.Null && patch.Images.Value != nil {
			images = datatypes.JSONSlice[string](patch.Images.Value)
		}
		updates["images"] = images
	}

	if patch.Video.Set {
		if patch.Video.Null || patch.Video.Value == "" {
			updates["video"] = nil
		} else {
			updates["video"] = patch.Video.Value
		}
	}

	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}
	return updates, nil
}

// setRequiredString applies a patch to a NOT NULL text column; clearing it is
// rejected.
func setRequiredString(updates map[string]interface{}, missing *[]string, column string, value utils.Optional[string]) {
	if !value.Set {
		return
	}
	if value.Null || strings.TrimSpace(value.Value) == "" {
		*missing = append(*missing, column)
		return
	}
	updates[column] = value.Value
}
