package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/preppal/internal/domain/entity"
	repo "github.com/oksasatya/preppal/internal/domain/repository"
)

type memUsers struct {
	mu   sync.Mutex
	rows []entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = fmt.Sprintf("u%d", len(m.rows)+1)
	m.rows = append(m.rows, *u)
	return nil
}

func (m *memUsers) find(match func(entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if match(r) {
			cp := r
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.Email == email })
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].PasswordHash = hash
			return nil
		}
	}
	return repo.ErrNotFound
}

type memFavourites struct {
	mu   sync.Mutex
	rows []entity.FavouriteRecipe
}

func (m *memFavourites) idx(owner, recipeID string) int {
	for i, f := range m.rows {
		if f.OwnerEmail == owner && f.RecipeID == recipeID {
			return i
		}
	}
	return -1
}

func (m *memFavourites) InsertIfAbsent(_ context.Context, f *entity.FavouriteRecipe) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.idx(f.OwnerEmail, f.RecipeID) >= 0 {
		return false, nil
	}
	f.ID = fmt.Sprintf("f%d", len(m.rows)+1)
	f.CreatedAt = time.Now()
	m.rows = append(m.rows, *f)
	return true, nil
}

func (m *memFavourites) Get(_ context.Context, owner, recipeID string) (*entity.FavouriteRecipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.idx(owner, recipeID)
	if i < 0 {
		return nil, repo.ErrNotFound
	}
	f := m.rows[i]
	return &f, nil
}

func (m *memFavourites) List(_ context.Context, owner string, limit int) ([]entity.FavouriteRecipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.FavouriteRecipe{}
	for _, f := range m.rows {
		if f.OwnerEmail == owner && (limit <= 0 || len(out) < limit) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memFavourites) Count(ctx context.Context, owner string) (int, error) {
	all, err := m.List(ctx, owner, 0)
	return len(all), err
}

func (m *memFavourites) Replace(_ context.Context, f *entity.FavouriteRecipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.idx(f.OwnerEmail, f.RecipeID)
	if i < 0 {
		return repo.ErrNotFound
	}
	m.rows[i] = *f
	return nil
}

func (m *memFavourites) Delete(_ context.Context, owner, recipeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.idx(owner, recipeID)
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
			break
		}
	}
	return nil
}

type memKitchen struct {
	mu    sync.Mutex
	items []entity.KitchenItem
}

func (m *memKitchen) List(_ context.Context, owner string) ([]entity.KitchenItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.KitchenItem{}
	for _, it := range m.items {
		if it.OwnerEmail == owner {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memKitchen) Upsert(_ context.Context, owner, name string, bestBefore time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.OwnerEmail == owner && it.Name == name {
			m.items[i].BestBefore = bestBefore
			return nil
		}
	}
	m.items = append(m.items, entity.KitchenItem{OwnerEmail: owner, Name: name, BestBefore: bestBefore})
	return nil
}

func (m *memKitchen) Delete(_ context.Context, owner, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.OwnerEmail == owner && it.Name == name {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}
