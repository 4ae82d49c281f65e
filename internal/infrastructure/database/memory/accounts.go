package memory

import (
	"context"
	"time"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/domain/seller"
	"dailypay-backend/internal/domain/user"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/google/uuid"
)

type userRepo struct{ s *Store }

func copyUser(u *user.User) *user.User {
	c := *u
	c.ResetPasswordToken = ptrCopy(u.ResetPasswordToken)
	c.ResetPasswordExpires = ptrCopy(u.ResetPasswordExpires)
	c.LastActive = ptrCopy(u.LastActive)
	return &c
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.ErrUserExists
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := r.s.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = copyUser(u)
	return nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) GetByID(_ context.Context, userID uuid.UUID) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *userRepo) List(_ context.Context) ([]*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, copyUser(u))
	}
	newestFirst(out, func(u *user.User) time.Time { return u.CreatedAt })
	return out, nil
}

func (r *userRepo) update(userID uuid.UUID, fn func(u *user.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = r.s.tick()
	return nil
}

func (r *userRepo) SetRole(_ context.Context, userID uuid.UUID, role auth.Role) error {
	return r.update(userID, func(u *user.User) { u.Role = role })
}

func (r *userRepo) SetBanned(_ context.Context, userID uuid.UUID, banned bool) error {
	return r.update(userID, func(u *user.User) { u.Banned = banned })
}

func (r *userRepo) SetSuspended(_ context.Context, userID uuid.UUID, suspended bool) error {
	return r.update(userID, func(u *user.User) { u.Suspended = suspended })
}

func (r *userRepo) SetResetToken(_ context.Context, userID uuid.UUID, hashedToken string, expiresAt time.Time) error {
	return r.update(userID, func(u *user.User) {
		u.ResetPasswordToken = &hashedToken
		u.ResetPasswordExpires = &expiresAt
	})
}

func (r *userRepo) ClearResetToken(_ context.Context, userID uuid.UUID) error {
	return r.update(userID, func(u *user.User) {
		u.ResetPasswordToken = nil
		u.ResetPasswordExpires = nil
	})
}

func (r *userRepo) ConsumeResetToken(_ context.Context, email, hashedToken string, now time.Time, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email != email || !resetMatches(u.ResetPasswordToken, u.ResetPasswordExpires, hashedToken, now) {
			continue
		}
		u.PasswordHash = passwordHash
		u.ResetPasswordToken = nil
		u.ResetPasswordExpires = nil
		u.LastActive = &now
		u.UpdatedAt = now
		return nil
	}
	return appErrors.ErrInvalidOrExpiredToken
}

func (r *userRepo) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, u := range r.s.users {
		if u.ResetPasswordExpires != nil && !u.ResetPasswordExpires.After(now) {
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
			n++
		}
	}
	return n, nil
}

func resetMatches(token *string, expires *time.Time, hashed string, now time.Time) bool {
	return token != nil && expires != nil && *token == hashed && expires.After(now)
}

type sellerRepo struct{ s *Store }

func copySeller(sl *seller.Seller) *seller.Seller {
	c := *sl
	c.BankInfo = ptrCopy(sl.BankInfo)
	c.ResetPasswordToken = ptrCopy(sl.ResetPasswordToken)
	c.ResetPasswordExpires = ptrCopy(sl.ResetPasswordExpires)
	c.LastActive = ptrCopy(sl.LastActive)
	return &c
}

func (r *sellerRepo) Create(_ context.Context, sl *seller.Seller) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.sellers {
		if existing.Email == sl.Email {
			return seller.ErrSellerExists
		}
	}
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	now := r.s.tick()
	sl.CreatedAt = now
	sl.UpdatedAt = now
	r.s.sellers[sl.ID] = copySeller(sl)
	return nil
}

func (r *sellerRepo) GetByEmail(_ context.Context, email string) (*seller.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sl := range r.s.sellers {
		if sl.Email == email {
			return copySeller(sl), nil
		}
	}
	return nil, seller.ErrSellerNotFound
}

func (r *sellerRepo) GetByID(_ context.Context, sellerID uuid.UUID) (*seller.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sl, ok := r.s.sellers[sellerID]
	if !ok {
		return nil, seller.ErrSellerNotFound
	}
	return copySeller(sl), nil
}

func (r *sellerRepo) List(_ context.Context) ([]*seller.Seller, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*seller.Seller, 0, len(r.s.sellers))
	for _, sl := range r.s.sellers {
		out = append(out, copySeller(sl))
	}
	newestFirst(out, func(sl *seller.Seller) time.Time { return sl.CreatedAt })
	return out, nil
}

func (r *sellerRepo) update(sellerID uuid.UUID, fn func(sl *seller.Seller)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.sellers[sellerID]
	if !ok {
		return seller.ErrSellerNotFound
	}
	fn(sl)
	sl.UpdatedAt = r.s.tick()
	return nil
}

func (r *sellerRepo) SetApproved(_ context.Context, sellerID uuid.UUID, approved bool) error {
	return r.update(sellerID, func(sl *seller.Seller) { sl.Approved = approved })
}

func (r *sellerRepo) SetBanned(_ context.Context, sellerID uuid.UUID, banned bool) error {
	return r.update(sellerID, func(sl *seller.Seller) { sl.Banned = banned })
}

func (r *sellerRepo) SetSuspended(_ context.Context, sellerID uuid.UUID, suspended bool) error {
	return r.update(sellerID, func(sl *seller.Seller) { sl.Suspended = suspended })
}

func (r *sellerRepo) UpdateBankInfo(_ context.Context, sellerID uuid.UUID, info seller.BankInfo) error {
	return r.update(sellerID, func(sl *seller.Seller) { sl.BankInfo = &info })
}

func (r *sellerRepo) SetResetToken(_ context.Context, sellerID uuid.UUID, hashedToken string, expiresAt time.Time) error {
	return r.update(sellerID, func(sl *seller.Seller) {
		sl.ResetPasswordToken = &hashedToken
		sl.ResetPasswordExpires = &expiresAt
	})
}

func (r *sellerRepo) ClearResetToken(_ context.Context, sellerID uuid.UUID) error {
	return r.update(sellerID, func(sl *seller.Seller) {
		sl.ResetPasswordToken = nil
		sl.ResetPasswordExpires = nil
	})
}

func (r *sellerRepo) ConsumeResetToken(_ context.Context, email, hashedToken string, now time.Time, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sl := range r.s.sellers {
		if sl.Email != email || !resetMatches(sl.ResetPasswordToken, sl.ResetPasswordExpires, hashedToken, now) {
			continue
		}
		sl.PasswordHash = passwordHash
		sl.ResetPasswordToken = nil
		sl.ResetPasswordExpires = nil
		sl.LastActive = &now
		sl.UpdatedAt = now
		return nil
	}
	return appErrors.ErrInvalidOrExpiredToken
}

func (r *sellerRepo) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, sl := range r.s.sellers {
		if sl.ResetPasswordExpires != nil && !sl.ResetPasswordExpires.After(now) {
			sl.ResetPasswordToken = nil
			sl.ResetPasswordExpires = nil
			n++
		}
	}
	return n, nil
}
