package routes

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/repository"
	"gorm.io/datatypes"
)

const testRegion = "eu-west-1"

type memoryStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failKeys map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, failKeys: map[string]bool{}}
}

func (s *memoryStore) Store(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failKeys[key] {
		return errors.Join(infra.ErrStorage, errors.New("upload refused"))
	}
	s.objects[bucket+"/"+key] = data
	return nil
}

func (s *memoryStore) Remove(ctx context.Context, bucket, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+key)
	return nil
}

func (s *memoryStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[bucket+"/"+key]
	return ok, nil
}

func (s *memoryStore) List(_ context.Context, bucket string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for path := range s.objects {
		if key, ok := strings.CutPrefix(path, bucket+"/"); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *memoryStore) URL(bucket, key string) string {
	return infra.PublicURL(bucket, testRegion, key)
}

func (s *memoryStore) has(bucket, key string) bool {
	ok, _ := s.Exists(context.Background(), bucket, key)
	return ok
}

// memoryProjects keeps insertion order so listing matches created_at ordering.
type memoryProjects struct {
	mu    sync.Mutex
	items []entity.Project
}

func (r *memoryProjects) FindAll(context.Context) ([]entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Project{}, r.items...), nil
}

func (r *memoryProjects) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			project := r.items[i]
			return &project, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryProjects) Create(_ context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = uuid.New()
	if project.Images == nil {
		project.Images = datatypes.JSONSlice[string]{}
	}
	r.items = append(r.items, *project)
	return nil
}

func (r *memoryProjects) UpdateByID(ctx context.Context, id uuid.UUID, patch repository.ProjectPatch) (*entity.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		p := &r.items[i]
		if p.ID != id {
			continue
		}
		if patch.Title.HasValue() {
			p.Title = patch.Title.Value
		}
		if patch.Location.HasValue() {
			p.Location = patch.Location.Value
		}
		if patch.Description.HasValue() {
			p.Description = patch.Description.Value
		}
		if patch.Year.HasValue() {
			p.Year = patch.Year.Value
		}
		if patch.Images.Set {
			p.Images = datatypes.JSONSlice[string](append([]string{}, patch.Images.Value...))
		}
		if patch.Video.Set {
			if patch.Video.HasValue() && patch.Video.Value != "" {
				video := patch.Video.Value
				p.Video = &video
			} else {
				p.Video = nil
			}
		}
		project := *p
		return &project, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryProjects) DeleteByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			project := r.items[i]
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &project, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryPartners struct {
	mu    sync.Mutex
	items []entity.Partner
}

func (r *memoryPartners) FindAll(context.Context) ([]entity.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Partner{}, r.items...), nil
}

func (r *memoryPartners) FindByID(_ context.Context, id uuid.UUID) (*entity.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			partner := r.items[i]
			return &partner, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryPartners) Create(_ context.Context, partner *entity.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	partner.ID = uuid.New()
	r.items = append(r.items, *partner)
	return nil
}

func (r *memoryPartners) UpdateByID(_ context.Context, id uuid.UUID, patch repository.PartnerPatch) (*entity.Partner, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		p := &r.items[i]
		if p.ID != id {
			continue
		}
		if patch.FullName.HasValue() {
			p.FullName = patch.FullName.Value
		}
		if patch.Quote.HasValue() {
			p.Quote = patch.Quote.Value
		}
		if patch.Description.HasValue() {
			p.Description = patch.Description.Value
		}
		if patch.ImageURL.HasValue() {
			p.ImageURL = patch.ImageURL.Value
		}
		partner := *p
		return &partner, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryPartners) DeleteByID(_ context.Context, id uuid.UUID) (*entity.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			partner := r.items[i]
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &partner, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryStats struct {
	mu    sync.Mutex
	items []entity.Stat
}

func (r *memoryStats) FindAll(context.Context) ([]entity.Stat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Stat{}, r.items...), nil
}

func (r *memoryStats) FindByID(_ context.Context, id uuid.UUID) (*entity.Stat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			stat := r.items[i]
			return &stat, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryStats) Create(_ context.Context, stat *entity.Stat) error {
	if strings.TrimSpace(stat.Title) == "" || strings.TrimSpace(stat.Description) == "" {
		return repository.ErrValidation
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stat.ID = uuid.New()
	r.items = append(r.items, *stat)
	return nil
}

func (r *memoryStats) UpdateByID(_ context.Context, id uuid.UUID, patch repository.StatPatch) (*entity.Stat, error) {
	if (patch.Title.Set && !patch.Title.HasValue()) || (patch.Description.Set && !patch.Description.HasValue()) {
		return nil, repository.ErrValidation
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		s := &r.items[i]
		if s.ID != id {
			continue
		}
		if patch.Title.HasValue() {
			s.Title = patch.Title.Value
		}
		if patch.Description.HasValue() {
			s.Description = patch.Description.Value
		}
		stat := *s
		return &stat, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memoryStats) DeleteByID(_ context.Context, id uuid.UUID) (*entity.Stat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			stat := r.items[i]
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &stat, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryBox struct {
	mu  sync.Mutex
	box *entity.BoxDescription
}

func (r *memoryBox) FindFirst(context.Context) (*entity.BoxDescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.box == nil {
		return nil, repository.ErrNotFound
	}
	box := *r.box
	return &box, nil
}

func (r *memoryBox) Upsert(_ context.Context, description string) (*entity.BoxDescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.box == nil {
		r.box = &entity.BoxDescription{ID: uuid.New()}
	}
	r.box.Description = description
	box := *r.box
	return &box, nil
}

type memoryAdmins struct {
	mu    sync.Mutex
	items map[string]entity.Admin
}

func newMemoryAdmins() *memoryAdmins {
	return &memoryAdmins{items: map[string]entity.Admin{}}
}

func (r *memoryAdmins) Create(_ context.Context, admin *entity.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if _, ok := r.items[admin.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	admin.ID = uuid.New()
	r.items[admin.Email] = *admin
	return nil
}

func (r *memoryAdmins) FindByEmail(_ context.Context, email string) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.items[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &admin, nil
}

func (r *memoryAdmins) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memoryAdmins) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memoryAdmins) UpdatePassword(_ context.Context, id uuid.UUID, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, admin := range r.items {
		if admin.ID == id {
			admin.Password = hashed
			r.items[email] = admin
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryAdmins) DeleteByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, admin := range r.items {
		if admin.ID == id {
			delete(r.items, email)
			return &admin, nil
		}
	}
	return nil, repository.ErrNotFound
}

type recordingRelay struct {
	mu   sync.Mutex
	sent []infra.MailMessage
}

func (r *recordingRelay) Send(_ context.Context, msg infra.MailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}
