package entitlement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/internal/infrastructure/cache"
)

// DefaultTTL is how long a school's unlocked-module list is cached
const DefaultTTL = 5 * time.Minute

// Service resolves which premium modules a school has unlocked
type Service struct {
	modules repositories.ModuleRepository
	store   cache.Store
	ttl     time.Duration
	logger  *zap.Logger
}

// NewService creates the entitlement service. store may be nil to disable caching.
func NewService(modules repositories.ModuleRepository, store cache.Store, logger *zap.Logger) *Service {
	return &Service{
		modules: modules,
		store:   store,
		ttl:     DefaultTTL,
		logger:  logger,
	}
}

func cacheKey(schoolID uuid.UUID) string {
	return "entitlements:" + schoolID.String()
}

// Catalog lists every module ordered by name
func (s *Service) Catalog(ctx context.Context) ([]entities.GroveModule, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

// Unlocked lists the school's unlocked modules
func (s *Service) Unlocked(ctx context.Context, schoolID uuid.UUID) ([]entities.GroveModule, error) {
	modules, err := s.modules.ListUnlocked(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked modules: %w", err)
	}
	return modules, nil
}

// UnlockedIDs returns the ids of the school's unlocked modules, read through the cache.
// Cache failures fall back to the repository.
func (s *Service) UnlockedIDs(ctx context.Context, schoolID uuid.UUID) ([]string, error) {
	if ids, ok := s.fromCache(ctx, schoolID); ok {
		return ids, nil
	}

	modules, err := s.Unlocked(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}

	s.toCache(ctx, schoolID, ids)
	return ids, nil
}

// Activate unlocks a module for the school. Activating twice is not an error.
func (s *Service) Activate(ctx context.Context, schoolID uuid.UUID, moduleID string) error {
	if err := s.modules.Unlock(ctx, schoolID, moduleID); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, cacheKey(schoolID)); err != nil {
			s.warn("entitlement.cache.invalidate_failed", schoolID, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("entitlement.module.activated",
			zap.String("school_id", schoolID.String()),
			zap.String("module_id", moduleID),
		)
	}
	return nil
}

func (s *Service) fromCache(ctx context.Context, schoolID uuid.UUID) ([]string, bool) {
	if s.store == nil {
		return nil, false
	}
	raw, ok, err := s.store.Get(ctx, cacheKey(schoolID))
	if err != nil {
		s.warn("entitlement.cache.read_failed", schoolID, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.warn("entitlement.cache.corrupt", schoolID, err)
		return nil, false
	}
	return ids, true
}

func (s *Service) toCache(ctx context.Context, schoolID uuid.UUID, ids []string) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, cacheKey(schoolID), string(raw), s.ttl); err != nil {
		s.warn("entitlement.cache.write_failed", schoolID, err)
	}
}

func (s *Service) warn(msg string, schoolID uuid.UUID, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, zap.String("school_id", schoolID.String()), zap.Error(err))
}
