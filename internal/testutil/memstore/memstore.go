// Package memstore holds in-memory implementations of the repository and
// storage ports for tests. They follow the same ordering, patch and
// not-found rules as the mongo and redis adapters.
package memstore

import (
	"bytes"
	"context"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

// table is a serial-id keyed collection guarded by a mutex. Rows are deep
// copied on the way in and out so callers never share slices or pointers
// with stored state.
type table[T any] struct {
	mu     sync.Mutex
	seq    int64
	rows   map[int64]*T
	clone  func(*T) *T
	writes int
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: make(map[int64]*T), clone: clone}
}

func (t *table[T]) insert(row *T, setID func(*T, int64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	setID(row, t.seq)
	t.rows[t.seq] = t.clone(row)
	t.writes++
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t.clone(row), nil
}

func (t *table[T]) update(id int64, apply func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	apply(row)
	row = t.clone(row)
	t.rows[id] = row
	t.writes++
	return t.clone(row), nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	t.writes++
	return nil
}

// list returns copies ordered newest first, ties broken by id descending.
func (t *table[T]) list(keep func(*T) bool, created func(*T) (time.Time, int64)) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep != nil && !keep(row) {
			continue
		}
		out = append(out, t.clone(row))
	}
	sort.Slice(out, func(i, j int) bool {
		ti, ii := created(out[i])
		tj, ij := created(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii > ij
	})
	return out
}

// Writes reports how many mutations the table has applied.
func (t *table[T]) Writes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func assignPtr[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func clonePortfolio(p *domain.PortfolioItem) *domain.PortfolioItem {
	c := *p
	c.ShortDescription = clonePtr(p.ShortDescription)
	c.ImageURL = clonePtr(p.ImageURL)
	c.Technologies = slices.Clone(p.Technologies)
	c.ProjectURL = clonePtr(p.ProjectURL)
	c.GithubURL = clonePtr(p.GithubURL)
	c.Content = clonePtr(p.Content)
	return &c
}

func cloneCaseStudy(cs *domain.CaseStudy) *domain.CaseStudy {
	c := *cs
	c.ImageURL = clonePtr(cs.ImageURL)
	c.Tags = slices.Clone(cs.Tags)
	c.ClientName = clonePtr(cs.ClientName)
	c.ProjectDuration = clonePtr(cs.ProjectDuration)
	c.Outcome = clonePtr(cs.Outcome)
	return &c
}

func cloneMessage(m *domain.ContactMessage) *domain.ContactMessage {
	c := *m
	c.AttachmentURL = clonePtr(m.AttachmentURL)
	c.AttachmentName = clonePtr(m.AttachmentName)
	return &c
}

func cloneSetting(s domain.AdminSetting) *domain.AdminSetting {
	s.Value = clonePtr(s.Value)
	return &s
}

// ── Content ───────────────────────────────────────────────────────────────────

type PortfolioRepository struct{ *table[domain.PortfolioItem] }

func NewPortfolioRepository() *PortfolioRepository {
	return &PortfolioRepository{newTable(clonePortfolio)}
}

func (r *PortfolioRepository) Create(_ context.Context, item *domain.PortfolioItem) error {
	r.insert(item, func(p *domain.PortfolioItem, id int64) { p.ID = id })
	return nil
}

func (r *PortfolioRepository) FindByID(_ context.Context, id int64) (*domain.PortfolioItem, error) {
	return r.get(id)
}

func (r *PortfolioRepository) List(_ context.Context, f ports.ListFilter) ([]*domain.PortfolioItem, error) {
	return r.list(
		func(p *domain.PortfolioItem) bool { return !f.FeaturedOnly || p.Featured },
		func(p *domain.PortfolioItem) (time.Time, int64) { return p.CreatedAt, p.ID },
	), nil
}

func (r *PortfolioRepository) Update(_ context.Context, id int64, patch ports.PortfolioPatch, updatedAt time.Time) (*domain.PortfolioItem, error) {
	return r.update(id, func(p *domain.PortfolioItem) {
		assign(&p.Title, patch.Title)
		assign(&p.Description, patch.Description)
		assignPtr(&p.ShortDescription, patch.ShortDescription)
		assignPtr(&p.ImageURL, patch.ImageURL)
		assign(&p.Technologies, patch.Technologies)
		assignPtr(&p.ProjectURL, patch.ProjectURL)
		assignPtr(&p.GithubURL, patch.GithubURL)
		assignPtr(&p.Content, patch.Content)
		assign(&p.Featured, patch.Featured)
		p.UpdatedAt = updatedAt
	})
}

func (r *PortfolioRepository) Delete(_ context.Context, id int64) error {
	return r.delete(id)
}

type CaseStudyRepository struct{ *table[domain.CaseStudy] }

func NewCaseStudyRepository() *CaseStudyRepository {
	return &CaseStudyRepository{newTable(cloneCaseStudy)}
}

func (r *CaseStudyRepository) Create(_ context.Context, cs *domain.CaseStudy) error {
	r.insert(cs, func(c *domain.CaseStudy, id int64) { c.ID = id })
	return nil
}

func (r *CaseStudyRepository) FindByID(_ context.Context, id int64) (*domain.CaseStudy, error) {
	return r.get(id)
}

func (r *CaseStudyRepository) List(_ context.Context, f ports.ListFilter) ([]*domain.CaseStudy, error) {
	return r.list(
		func(c *domain.CaseStudy) bool { return !f.FeaturedOnly || c.Featured },
		func(c *domain.CaseStudy) (time.Time, int64) { return c.CreatedAt, c.ID },
	), nil
}

func (r *CaseStudyRepository) Update(_ context.Context, id int64, patch ports.CaseStudyPatch, updatedAt time.Time) (*domain.CaseStudy, error) {
	return r.update(id, func(c *domain.CaseStudy) {
		assign(&c.Title, patch.Title)
		assign(&c.Excerpt, patch.Excerpt)
		assign(&c.Content, patch.Content)
		assignPtr(&c.ImageURL, patch.ImageURL)
		assign(&c.Tags, patch.Tags)
		assignPtr(&c.ClientName, patch.ClientName)
		assignPtr(&c.ProjectDuration, patch.ProjectDuration)
		assignPtr(&c.Outcome, patch.Outcome)
		assign(&c.Featured, patch.Featured)
		c.UpdatedAt = updatedAt
	})
}

func (r *CaseStudyRepository) Delete(_ context.Context, id int64) error {
	return r.delete(id)
}

type MessageRepository struct{ *table[domain.ContactMessage] }

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{newTable(cloneMessage)}
}

func (r *MessageRepository) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.insert(msg, func(m *domain.ContactMessage, id int64) { m.ID = id })
	return nil
}

func (r *MessageRepository) FindByID(_ context.Context, id int64) (*domain.ContactMessage, error) {
	return r.get(id)
}

func (r *MessageRepository) List(context.Context) ([]*domain.ContactMessage, error) {
	return r.list(nil, func(m *domain.ContactMessage) (time.Time, int64) { return m.CreatedAt, m.ID }), nil
}

func (r *MessageRepository) MarkAsRead(_ context.Context, id int64) (*domain.ContactMessage, error) {
	return r.update(id, func(m *domain.ContactMessage) { m.Read = true })
}

func (r *MessageRepository) Delete(_ context.Context, id int64) error {
	return r.delete(id)
}

type SettingRepository struct {
	mu   sync.Mutex
	rows map[string]domain.AdminSetting
}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{rows: make(map[string]domain.AdminSetting)}
}

func (r *SettingRepository) List(context.Context) ([]*domain.AdminSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AdminSetting, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, cloneSetting(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepository) Get(_ context.Context, key string) (*domain.AdminSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSetting(s), nil
}

func (r *SettingRepository) Upsert(_ context.Context, s *domain.AdminSetting) (*domain.AdminSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.Key] = *cloneSetting(*s)
	return cloneSetting(*s), nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

type UserRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return nil, domain.ErrUserExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = *cloneUser(*user)
	return cloneUser(*user), nil
}

func cloneUser(u domain.User) *domain.User {
	u.ProfileImageURL = clonePtr(u.ProfileImageURL)
	return &u
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// SessionStore expires entries against Now, which tests may replace.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	Now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session), Now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Expired(s.Now()) {
		return nil, domain.ErrUnauthorized
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ── Files ─────────────────────────────────────────────────────────────────────

// FileStore keeps uploaded bytes in memory under /uploads/<name>.
type FileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string][]byte)}
}

func (s *FileStore) Put(_ context.Context, name, _ string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = buf.Bytes()
	return "/uploads/" + name, nil
}

func (s *FileStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

// Names returns the stored file names, sorted.
func (s *FileStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for n := range s.files {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Content returns the bytes stored under the URL or name.
func (s *FileStore) Content(nameOrURL string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[strings.TrimPrefix(nameOrURL, "/uploads/")]
	return b, ok
}
