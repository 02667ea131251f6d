package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// Custom errors for the AccountService.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAddressNotFound = errors.New("address not found")
)

// accountService implements the AccountService interface.
type accountService struct {
	userRepo    db.UserRepository
	addressRepo db.AddressRepository
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(ur db.UserRepository, ar db.AddressRepository, logger *zap.Logger) AccountService {
	return &accountService{userRepo: ur, addressRepo: ar, logger: logger}
}

// InitializeProfile upserts the profile document from verified token
// claims. Called on every login, so it must be idempotent.
func (s *accountService) InitializeProfile(ctx context.Context, phone, displayName, email string) (*models.User, error) {
	user := &models.User{
		Phone:       phone,
		DisplayName: displayName,
		Email:       email,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to initialize profile: %w", err)
	}
	return user, nil
}

// GetProfile returns the stored profile for a phone number.
func (s *accountService) GetProfile(ctx context.Context, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, phone)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// ListAddresses returns the customer's address book, default first.
func (s *accountService) ListAddresses(ctx context.Context, phone string) ([]*models.Address, error) {
	addresses, err := s.addressRepo.List(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress adds an address. The customer's first address becomes the
// default automatically.
func (s *accountService) CreateAddress(ctx context.Context, phone string, req models.CreateAddressRequest) (*models.Address, error) {
	count, err := s.addressRepo.Count(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to count addresses: %w", err)
	}

	address := &models.Address{
		Door:      req.Door,
		Street:    req.Street,
		Area:      req.Area,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Type:      req.Type,
		IsDefault: req.IsDefault || count == 0,
	}
	id, err := s.addressRepo.Create(ctx, phone, address)
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	address.ID = id

	// An explicitly-default new address demotes the previous default.
	if address.IsDefault && count > 0 {
		if err := s.addressRepo.SetDefault(ctx, phone, id); err != nil {
			s.logger.Warn("failed to demote previous default address", zap.String("phone", phone), zap.Error(err))
		}
	}
	return address, nil
}

// UpdateAddress applies the provided fields to an existing address.
func (s *accountService) UpdateAddress(ctx context.Context, phone, addressID string, req models.UpdateAddressRequest) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, phone, addressID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrAddressNotFound, addressID)
		}
		return nil, fmt.Errorf("failed to get address '%s': %w", addressID, err)
	}

	if req.Door != nil {
		address.Door = *req.Door
	}
	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.Area != nil {
		address.Area = *req.Area
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.Pincode != nil {
		address.Pincode = *req.Pincode
	}
	if req.Type != nil {
		address.Type = *req.Type
	}

	if err := s.addressRepo.Update(ctx, phone, address); err != nil {
		return nil, fmt.Errorf("failed to update address '%s': %w", addressID, err)
	}
	return address, nil
}

// DeleteAddress removes an address. Deleting the default promotes the
// oldest remaining address.
func (s *accountService) DeleteAddress(ctx context.Context, phone, addressID string) error {
	address, err := s.addressRepo.GetByID(ctx, phone, addressID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrAddressNotFound, addressID)
		}
		return fmt.Errorf("failed to get address '%s': %w", addressID, err)
	}

	if err := s.addressRepo.Delete(ctx, phone, addressID); err != nil {
		return fmt.Errorf("failed to delete address '%s': %w", addressID, err)
	}

	if address.IsDefault {
		remaining, err := s.addressRepo.List(ctx, phone)
		if err != nil || len(remaining) == 0 {
			return nil
		}
		if err := s.addressRepo.SetDefault(ctx, phone, remaining[0].ID); err != nil {
			s.logger.Warn("failed to promote replacement default address", zap.String("phone", phone), zap.Error(err))
		}
	}
	return nil
}

// SetDefaultAddress marks one address default and clears the others.
func (s *accountService) SetDefaultAddress(ctx context.Context, phone, addressID string) error {
	if err := s.addressRepo.SetDefault(ctx, phone, addressID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: '%s'", ErrAddressNotFound, addressID)
		}
		return fmt.Errorf("failed to set default address '%s': %w", addressID, err)
	}
	return nil
}
