package services

import (
	"errors"
	"strings"

	"howyouknow-backend/internal/models"
	"howyouknow-backend/internal/stores"
)

// PairingService links two users into a couple via invitation codes.
type PairingService struct {
	users stores.UserStore
}

func NewPairingService(users stores.UserStore) *PairingService {
	return &PairingService{users: users}
}

// ConnectWithCode links the current user with the owner of the given
// invitation code. Both sides must be unpaired.
func (s *PairingService) ConnectWithCode(userID, code string) (*models.User, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	if user.PartnerID != nil {
		return nil, errors.New("already paired")
	}

	partner, err := s.users.GetUserByInvitationCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, errors.New("invitation code not found")
	}
	if partner.ID == userID {
		return nil, errors.New("cannot pair with yourself")
	}
	if partner.PartnerID != nil {
		return nil, errors.New("partner is already paired")
	}

	if err := s.users.LinkPartners(userID, partner.ID); err != nil {
		return nil, err
	}

	return s.users.GetUser(userID)
}

func (s *PairingService) GetProfile(userID string) (*models.User, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
