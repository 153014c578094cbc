package services

import (
	"errors"
	"fmt"
	"strings"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// UserRef names a user either by id or by username. Callers build one at
// the system boundary and resolve it exactly once; the engine never
// re-derives "id or name" semantics downstream.
type UserRef struct {
	ID       string
	Username string
}

// ParseUserRef builds a UserRef from a raw identifier, treating anything
// that does not look like a UUID as a username.
func ParseUserRef(raw string) UserRef {
	raw = strings.TrimSpace(raw)
	if looksLikeUUID(raw) {
		return UserRef{ID: raw}
	}
	return UserRef{Username: raw}
}

func looksLikeUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, r := range s {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return false
			}
		default:
			isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
			if !isHex {
				return false
			}
		}
	}
	return true
}

// ResolveUser loads the user a ref points at.
func (s *CorrespondenceService) ResolveUser(ref UserRef) (*model.User, error) {
	var user model.User
	var err error
	switch {
	case ref.ID != "":
		err = s.db.First(&user, "id = ?", ref.ID).Error
	case ref.Username != "":
		err = s.db.First(&user, "username = ?", ref.Username).Error
	default:
		return nil, ErrUserNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return &user, nil
}
