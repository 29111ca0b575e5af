package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

type schoolRepository struct {
	db *DB
}

func (r *schoolRepository) Create(ctx context.Context, school *entities.School) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if school.ID == uuid.Nil {
		school.ID = uuid.New()
	}
	r.db.schools[school.ID] = *school
	return nil
}

func (r *schoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.School, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.schools[id]
	if !ok {
		return nil, entities.ErrSchoolNotFound
	}
	return &s, nil
}

type userRepository struct {
	db *DB
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return entities.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	stored.SchoolID = cloneID(user.SchoolID)
	r.db.users[user.ID] = stored
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	r.db.users[userID] = u
	return nil
}

func (r *userRepository) ListBySchoolAndRole(ctx context.Context, schoolID uuid.UUID, role entities.Role) ([]*entities.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.User, 0)
	for _, u := range r.db.users {
		if u.Role != role || u.SchoolID == nil || *u.SchoolID != schoolID {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
