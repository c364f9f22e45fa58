package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wanderlist/internal/domain"

	"gorm.io/gorm"
)

// Record is the pointer type of a favorites model: a domain.Favorite that
// knows how to take edits from another value of its own type.
type Record[T any] interface {
	*T
	domain.Favorite
	ApplyEdits(src *T)
}

// FavoriteStore is one owned-resource collection. Country, attraction and
// weather favorites are instances of it.
type FavoriteStore[T any, P Record[T]] struct {
	db *gorm.DB
}

// NewFavoriteStore creates a store for the favorites model T.
func NewFavoriteStore[T any, P Record[T]](db *gorm.DB) *FavoriteStore[T, P] {
	return &FavoriteStore[T, P]{db: db}
}

// Label names the collection in messages
func (s *FavoriteStore[T, P]) Label() string {
	return P(new(T)).Label()
}

// Add saves payload for userID. The owner always comes from userID, and a
// second record with the same natural key is refused with a conflict.
func (s *FavoriteStore[T, P]) Add(ctx context.Context, userID uint, payload P) (P, error) {
	if err := domain.CheckRequired(payload); err != nil {
		return nil, err
	}
	payload.PrepareInsert(userID)

	// The unique index decides; this lookup only gives the common case a clean answer.
	var count int64
	err := s.db.WithContext(ctx).Model(new(T)).
		Where("user_id = ?", userID).
		Where(payload.NaturalKey()).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("checking existing %s: %w", strings.ToLower(s.Label()), err)
	}
	if count > 0 {
		return nil, s.conflict()
	}

	if err := s.db.WithContext(ctx).Create(payload).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, s.conflict()
		}
		return nil, fmt.Errorf("creating %s: %w", strings.ToLower(s.Label()), err)
	}
	return payload, nil
}

// ListByUser returns every record owned by userID
func (s *FavoriteStore[T, P]) ListByUser(ctx context.Context, userID uint) ([]T, error) {
	records := []T{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing %s: %w", strings.ToLower(s.Label()), err)
	}
	return records, nil
}

// Update applies the editable fields of edits to the caller's record
func (s *FavoriteStore[T, P]) Update(ctx context.Context, userID, recordID uint, edits P) (P, error) {
	rec, err := s.owned(ctx, userID, recordID, "update")
	if err != nil {
		return nil, err
	}
	rec.ApplyEdits((*T)(edits))
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("updating %s: %w", strings.ToLower(s.Label()), err)
	}
	return rec, nil
}

// Remove deletes the caller's record
func (s *FavoriteStore[T, P]) Remove(ctx context.Context, userID, recordID uint) error {
	rec, err := s.owned(ctx, userID, recordID, "delete")
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(rec).Error; err != nil {
		return fmt.Errorf("deleting %s: %w", strings.ToLower(s.Label()), err)
	}
	return nil
}

// owned fetches a record and checks it belongs to userID
func (s *FavoriteStore[T, P]) owned(ctx context.Context, userID, recordID uint, action string) (P, error) {
	rec := P(new(T))
	err := s.db.WithContext(ctx).First(rec, recordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound(s.Label() + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", strings.ToLower(s.Label()), err)
	}
	if rec.OwnerID() != userID {
		return nil, domain.Forbidden("Not authorized to " + action + " this item")
	}
	return rec, nil
}

func (s *FavoriteStore[T, P]) conflict() error {
	return domain.Conflict(s.Label() + " already in favourites")
}
