package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"equipment-panel/internal/entities"
	"equipment-panel/pkg/constants"
	apperrors "equipment-panel/pkg/errors"

	"github.com/aarondl/null/v8"
)

// MemoryStore - хранилище в памяти для STORAGE_DRIVER=memory и тестов.
// Повторяет поведение схемы Postgres: уникальные serial_number/username,
// ON DELETE SET NULL для оборудования удалённого пользователя.
type MemoryStore struct {
	mu              sync.RWMutex
	nextUserID      uint64
	nextEquipmentID uint64
	users           map[uint64]entities.User
	equipment       map[uint64]entities.Equipment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint64]entities.User),
		equipment: make(map[uint64]entities.Equipment),
	}
}

// Отдельные счётчики на таблицу, как последовательности в Postgres.
func (s *MemoryStore) newUserID() uint64 {
	s.nextUserID++
	return s.nextUserID
}

func (s *MemoryStore) newEquipmentID() uint64 {
	s.nextEquipmentID++
	return s.nextEquipmentID
}

func now() *time.Time {
	t := time.Now()
	return &t
}

type memoryEquipmentRepository struct{ store *MemoryStore }

func NewMemoryEquipmentRepository(store *MemoryStore) EquipmentRepositoryInterface {
	return &memoryEquipmentRepository{store: store}
}

func (r *memoryEquipmentRepository) withOwner(e entities.Equipment) entities.Equipment {
	e.Username = null.String{}
	if e.UserID.Valid {
		if u, ok := r.store.users[e.UserID.Uint64]; ok {
			e.Username = null.StringFrom(u.Username)
		}
	}
	return e
}

func (r *memoryEquipmentRepository) GetEquipments(ctx context.Context) ([]entities.Equipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]entities.Equipment, 0, len(r.store.equipment))
	for _, e := range r.store.equipment {
		items = append(items, r.withOwner(e))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memoryEquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e = r.withOwner(e)
	return &e, nil
}

func (r *memoryEquipmentRepository) ExistsBySerialNumber(ctx context.Context, serialNumber string, excludeID uint64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.equipment {
		if e.SerialNumber == serialNumber && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryEquipmentRepository) CreateEquipment(ctx context.Context, entity *entities.Equipment) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.equipment {
		if e.SerialNumber == entity.SerialNumber {
			return 0, apperrors.ErrConflict
		}
	}
	e := *entity
	e.ID = r.store.newEquipmentID()
	e.CreatedAt, e.UpdatedAt = now(), now()
	r.store.equipment[e.ID] = e
	return e.ID, nil
}

func (r *memoryEquipmentRepository) UpdateEquipment(ctx context.Context, entity *entities.Equipment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.equipment[entity.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	for _, e := range r.store.equipment {
		if e.SerialNumber == entity.SerialNumber && e.ID != entity.ID {
			return apperrors.ErrConflict
		}
	}
	e := *entity
	e.CreatedAt, e.UpdatedAt = existing.CreatedAt, now()
	r.store.equipment[e.ID] = e
	return nil
}

func (r *memoryEquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.equipment, id)
	return nil
}

type memoryUserRepository struct{ store *MemoryStore }

func NewMemoryUserRepository(store *MemoryStore) UserRepositoryInterface {
	return &memoryUserRepository{store: store}
}

func (r *memoryUserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]entities.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, entity *entities.User) (uint64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == entity.Username {
			return 0, apperrors.ErrConflict
		}
	}
	u := *entity
	u.ID = r.store.newUserID()
	u.CreatedAt, u.UpdatedAt = now(), now()
	r.store.users[u.ID] = u
	return u.ID, nil
}

func (r *memoryUserRepository) UpdateRole(ctx context.Context, id uint64, role constants.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = now()
	r.store.users[id] = u
	return nil
}

func (r *memoryUserRepository) DeleteUser(ctx context.Context, id uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.users, id)
	for eid, e := range r.store.equipment {
		if e.UserID.Valid && e.UserID.Uint64 == id {
			e.UserID = null.Uint64{}
			r.store.equipment[eid] = e
		}
	}
	return nil
}

// MemoryCacheRepository - кеш в памяти с TTL, замена Redis.
type MemoryCacheRepository struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryCacheRepository() CacheRepositoryInterface {
	return &MemoryCacheRepository{entries: make(map[string]time.Time)}
}

func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if expiration <= 0 {
		r.entries[key] = time.Now().AddDate(100, 0, 0)
		return nil
	}
	r.entries[key] = time.Now().Add(expiration)
	return nil
}

func (r *MemoryCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.entries[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(r.entries, key)
		return false, nil
	}
	return true, nil
}
