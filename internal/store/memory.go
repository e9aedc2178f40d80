package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yanizio/pcgsite/internal/site"
)

// Compile-time assertion: *Memory satisfies Storage.
var _ Storage = (*Memory)(nil)

// Memory is a process-local Storage.  It follows the same contract as SQL
// (lazy singletons, idempotent delete, sentinel errors) and is selected with
// `database.driver: memory` for demos without MySQL.  State is lost on exit.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]User
	content   *site.Content
	theme     *site.Theme
	resources map[int64]Resource
	nextID    int64
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]User),
		resources: make(map[int64]Resource),
	}
}

func (m *Memory) GetUser(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, nu NewUser) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == nu.Username {
			return nil, ErrUsernameTaken
		}
	}
	u := User{ID: uuid.NewString(), Username: nu.Username, Password: nu.Password}
	m.users[u.ID] = u
	return &u, nil
}

// contentLocked lazily creates the content row.  Caller holds m.mu.
func (m *Memory) contentLocked() *site.Content {
	if m.content == nil {
		d := site.DefaultContent()
		m.content = &d
	}
	return m.content
}

func (m *Memory) themeLocked() *site.Theme {
	if m.theme == nil {
		d := site.DefaultTheme()
		m.theme = &d
	}
	return m.theme
}

func (m *Memory) GetSiteContent(_ context.Context) (*site.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.contentLocked().Clone()
	return &c, nil
}

func (m *Memory) UpdateSiteContent(_ context.Context, p site.ContentPatch) (*site.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.contentLocked()
	p.Apply(cur)
	c := cur.Clone()
	return &c, nil
}

func (m *Memory) GetSiteTheme(_ context.Context) (*site.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := *m.themeLocked()
	return &t, nil
}

func (m *Memory) UpdateSiteTheme(_ context.Context, p site.ThemePatch) (*site.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.themeLocked()
	p.Apply(cur)
	t := *cur
	return &t, nil
}

func (m *Memory) GetResources(_ context.Context) ([]Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Resource, 0, len(m.resources))
	for _, r := range m.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateResource(_ context.Context, in ResourceInput) (*Resource, error) {
	r, err := in.record()
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.resources[r.ID] = r
	return &r, nil
}

func (m *Memory) UpdateResource(_ context.Context, id int64, p ResourcePatch) (*Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := p.Apply(&r); err != nil {
		return nil, err
	}
	m.resources[id] = r
	return &r, nil
}

func (m *Memory) DeleteResource(_ context.Context, id int64) error {
	m.mu.Lock()
	delete(m.resources, id)
	m.mu.Unlock()
	return nil
}
