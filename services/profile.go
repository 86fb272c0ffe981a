package services

import (
	"errors"
	"fmt"
	"strings"

	"ieltsprep/models"

	"gorm.io/gorm"
)

// ProfileStore is the storage capability the profile service needs.
type ProfileStore interface {
	ProfileByUserID(userID string) (*models.Profile, error)
	CreateProfile(p *models.Profile) error
	UpdateProfileFields(userID string, fields map[string]interface{}) error
}

func (s *GormStore) ProfileByUserID(userID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &p, nil
}

func (s *GormStore) CreateProfile(p *models.Profile) error {
	return s.db.Create(p).Error
}

func (s *GormStore) UpdateProfileFields(userID string, fields map[string]interface{}) error {
	return s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(fields).Error
}

// ProfileService manages the lazily-created one-row-per-user profile.
type ProfileService struct {
	store ProfileStore
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// GetOrCreate returns the user's profile, creating a default row on first
// access. A concurrent duplicate insert is converged by re-reading the row
// the other request created; the race never surfaces to the caller.
func (p *ProfileService) GetOrCreate(userID string) (*models.Profile, error) {
	prof, err := p.store.ProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if prof != nil {
		return prof, nil
	}

	fresh := &models.Profile{UserID: userID}
	if err := p.store.CreateProfile(fresh); err != nil {
		if !isDuplicateKey(err) {
			return nil, err
		}
		// Another request inserted between our select and insert.
		existing, rerr := p.store.ProfileByUserID(userID)
		if rerr != nil {
			return nil, rerr
		}
		if existing == nil {
			return nil, fmt.Errorf("profile for %s vanished after duplicate insert: %w", userID, err)
		}
		return existing, nil
	}
	return fresh, nil
}

// ProfilePatch carries the client-editable profile fields; nil means "leave
// unchanged". Premium status is never client-writable; it only changes through
// the premium service and scheduler.
type ProfilePatch struct {
	FullName  *string
	BandGoal  *float64
	AvatarURL *string
	Email     *string
}

// Update patches the editable profile fields.
func (p *ProfileService) Update(userID string, patch ProfilePatch) (*models.Profile, error) {
	fields := map[string]interface{}{}
	if patch.FullName != nil {
		fields["full_name"] = *patch.FullName
	}
	if patch.BandGoal != nil {
		fields["band_goal"] = *patch.BandGoal
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}

	prof, err := p.store.ProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, fmt.Errorf("%w: profile", ErrNotFound)
	}
	if len(fields) == 0 {
		return prof, nil
	}
	if err := p.store.UpdateProfileFields(userID, fields); err != nil {
		return nil, err
	}
	return p.store.ProfileByUserID(userID)
}

// isDuplicateKey matches unique-constraint violations across the drivers we
// run on (postgres 23505, sqlite UNIQUE constraint failed).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
