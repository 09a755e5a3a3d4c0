package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/mailer"
)

var errBoom = errors.New("boom")

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	nextID int
	err    error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("u%d", m.nextID)
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memSessions struct {
	mu   sync.Mutex
	data map[string]entity.Session
	err  error
}

func newMemSessions() *memSessions { return &memSessions{data: map[string]entity.Session{}} }

func (m *memSessions) Create(_ context.Context, s *entity.Session, _ time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = *s
	return nil
}

func (m *memSessions) Get(_ context.Context, id string) (*entity.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) update(id string, fn func(*entity.Session)) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(&s)
	m.data[id] = s
	return nil
}

func (m *memSessions) IncrClicks(_ context.Context, id string) (int, error) {
	var n int
	err := m.update(id, func(s *entity.Session) { s.ClickCount++; n = s.ClickCount })
	return n, err
}

func (m *memSessions) SetRecipeCount(_ context.Context, id string, n int) error {
	return m.update(id, func(s *entity.Session) { s.RecipeCount = n })
}

func (m *memSessions) SetDateOfBirth(_ context.Context, id, dob string) error {
	return m.update(id, func(s *entity.Session) { s.DateOfBirth = dob })
}

func (m *memSessions) SetSearchIngredients(_ context.Context, id string, ingredients []string) error {
	return m.update(id, func(s *entity.Session) { s.SearchIngredients = append([]string(nil), ingredients...) })
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type memFavourites struct {
	mu   sync.Mutex
	rows []entity.FavouriteRecipe
	err  error
}

func (m *memFavourites) find(owner, recipeID string) int {
	for i, f := range m.rows {
		if f.OwnerEmail == owner && f.RecipeID == recipeID {
			return i
		}
	}
	return -1
}

func (m *memFavourites) InsertIfAbsent(_ context.Context, f *entity.FavouriteRecipe) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(f.OwnerEmail, f.RecipeID) >= 0 {
		return false, nil
	}
	f.ID = fmt.Sprintf("f%d", len(m.rows)+1)
	m.rows = append(m.rows, *f)
	return true, nil
}

func (m *memFavourites) Get(_ context.Context, owner, recipeID string) (*entity.FavouriteRecipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(owner, recipeID)
	if i < 0 {
		return nil, repo.ErrNotFound
	}
	f := m.rows[i]
	return &f, nil
}

func (m *memFavourites) List(_ context.Context, owner string, limit int) ([]entity.FavouriteRecipe, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.FavouriteRecipe{}
	for _, f := range m.rows {
		if f.OwnerEmail == owner {
			out = append(out, f)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memFavourites) Count(_ context.Context, owner string) (int, error) {
	all, err := m.List(context.Background(), owner, 0)
	return len(all), err
}

func (m *memFavourites) Replace(_ context.Context, f *entity.FavouriteRecipe) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(f.OwnerEmail, f.RecipeID)
	if i < 0 {
		return repo.ErrNotFound
	}
	m.rows[i] = *f
	return nil
}

func (m *memFavourites) Delete(_ context.Context, owner, recipeID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(owner, recipeID)
	if i < 0 {
		return false, nil
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return true, nil
}

type memShopping struct {
	mu   sync.Mutex
	rows []entity.ShoppingListItem
}

func (m *memShopping) InsertIfAbsent(_ context.Context, item *entity.ShoppingListItem) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.OwnerEmail == item.OwnerEmail && r.RecipeID == item.RecipeID {
			return false, nil
		}
	}
	item.ID = fmt.Sprintf("s%d", len(m.rows)+1)
	m.rows = append(m.rows, *item)
	return true, nil
}

func (m *memShopping) List(_ context.Context, owner string) ([]entity.ShoppingListItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.ShoppingListItem{}
	for _, r := range m.rows {
		if r.OwnerEmail == owner {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memShopping) Delete(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.OwnerEmail == owner {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type kitchenKey struct{ owner, name string }

type memKitchen struct {
	mu    sync.Mutex
	items map[kitchenKey]time.Time
	// failOn makes writes for that item name fail.
	failOn string
}

func newMemKitchen() *memKitchen { return &memKitchen{items: map[kitchenKey]time.Time{}} }

func (m *memKitchen) List(_ context.Context, owner string) ([]entity.KitchenItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.KitchenItem{}
	for k, bb := range m.items {
		if k.owner == owner {
			out = append(out, entity.KitchenItem{OwnerEmail: owner, Name: k.name, BestBefore: bb})
		}
	}
	return out, nil
}

func (m *memKitchen) Upsert(_ context.Context, owner, name string, bestBefore time.Time) error {
	if name == m.failOn {
		return errBoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[kitchenKey{owner, name}] = bestBefore
	return nil
}

func (m *memKitchen) Delete(_ context.Context, owner, name string) error {
	if name == m.failOn {
		return errBoom
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, kitchenKey{owner, name})
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

type fakeIndex struct {
	indexed []string
	deleted []string
	hits    []entity.FavouriteHit
	err     error
}

func (f *fakeIndex) Index(_ context.Context, fav *entity.FavouriteRecipe) error {
	f.indexed = append(f.indexed, fav.RecipeID)
	return f.err
}

func (f *fakeIndex) Delete(_ context.Context, _, recipeID string) error {
	f.deleted = append(f.deleted, recipeID)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _, _ string, _ int) ([]entity.FavouriteHit, error) {
	return f.hits, f.err
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func newCredentials(t *testing.T) (*CredentialService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	logger, _ := newTestLogger()
	return NewCredentialService(users, helpers.NewPasswordHasher(bcrypt.MinCost), logger), users
}
