package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/core/domain"
	"github.com/sustaincity/city-backend/internal/core/ports"
)

// UserRegistry is the in-memory, process-lifetime store of user accounts.
// Both indices are guarded by a single mutex so that a create racing a lookup
// on the same username resolves to exactly one winner, and delete removes
// both index entries atomically.
type UserRegistry struct {
	mu         sync.RWMutex
	byID       map[int64]*domain.User
	byUsername map[string]*domain.User
	nextID     int64

	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewUserRegistry(hasher *PasswordHasher, logger zerolog.Logger) *UserRegistry {
	return &UserRegistry{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]*domain.User),
		hasher:     hasher,
		logger:     logger,
	}
}

// SeedDemoUsers installs the four demo accounts the dashboard ships with.
// Call once at process start; subsequent creates continue the id sequence.
func (r *UserRegistry) SeedDemoUsers(ctx context.Context) error {
	seeds := []struct {
		username, password, email, name, role string
	}{
		{"admin", "admin123", "admin@city.gov", "Admin User", domain.RoleGovernmentAdmin},
		{"manager", "manager123", "manager@city.gov", "City Manager", domain.RoleCityManager},
		{"provider_admin", "provider123", "provideradmin@city.gov", "Provider Admin", domain.RoleServiceProviderAdmin},
		{"provider_user", "user123", "provideruser@city.gov", "Provider User", domain.RoleServiceProviderUser},
	}
	for _, s := range seeds {
		if _, err := r.Create(ctx, s.role, ports.CreateUserInput{
			Username: s.username,
			Password: s.password,
			Email:    s.email,
			Name:     s.name,
		}); err != nil {
			return err
		}
	}
	return nil
}

// Create hashes the password, assigns the next id, and stores the record
// under both indices. Fails with ErrUserExists when the username is taken.
func (r *UserRegistry) Create(_ context.Context, role string, in ports.CreateUserInput) (*domain.User, error) {
	// bcrypt is deliberately slow; keep it outside the critical section.
	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[in.Username]; exists {
		return nil, domain.ErrUserExists
	}

	r.nextID++
	user := &domain.User{
		ID:           r.nextID,
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Name:         in.Name,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user

	r.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Str("role", role).Msg("user created")
	return cloneUser(user), nil
}

func (r *UserRegistry) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRegistry) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// List returns a point-in-time snapshot; later mutations never show through.
func (r *UserRegistry) List(_ context.Context) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, *cloneUser(u))
	}
	return users
}

// Update applies only the fields present in the partial input. A nil email or
// name keeps the stored value; a non-nil Active always overwrites.
func (r *UserRegistry) Update(_ context.Context, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	return cloneUser(user), nil
}

// Delete removes the record from both indices atomically and reports whether
// anything was removed.
func (r *UserRegistry) Delete(_ context.Context, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	delete(r.byUsername, user.Username)

	r.logger.Info().Int64("user_id", id).Str("username", user.Username).Msg("user deleted")
	return true
}

// RecordLogin stamps the user's last login. Silent no-op for unknown users.
func (r *UserRegistry) RecordLogin(_ context.Context, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.byUsername[username]; ok {
		now := time.Now().UTC()
		user.LastLogin = &now
	}
}

// VerifyCredentials delegates to the password hasher.
func (r *UserRegistry) VerifyCredentials(user *domain.User, plaintext string) bool {
	return r.hasher.Verify(plaintext, user.PasswordHash)
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.LastLogin != nil {
		ts := *u.LastLogin
		clone.LastLogin = &ts
	}
	return &clone
}
