// Package users implements the session/token service: it issues, verifies,
// rotates and revokes credential pairs backed by the sessions collection in
// the shared auth store, and owns the user lifecycle.
package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planfold/planfold/internal/common"
	"github.com/planfold/planfold/internal/server/auth"
	"github.com/planfold/planfold/internal/server/config"
	"github.com/planfold/planfold/internal/server/models"
	"github.com/planfold/planfold/internal/server/store"
)

// AuthPayload bundles a short-lived access token, a long-lived refresh token
// and the user they were issued for. The user copy never carries the
// password hash.
type AuthPayload struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

// Profile carries the optional user fields set at registration or update.
type Profile struct {
	FirstName string
	LastName  string
	Note      string
}

// Service provides authentication-related operations:
//   - Register/Login: create accounts, verify credentials, mint token pairs
//   - Refresh: rotate refresh tokens (single-use) and mint new access tokens
//   - Logout: revoke one session
//   - ChangePassword and admin user management
type Service struct {
	manager                      *store.Manager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

// NewService constructs a Service over the store manager using server config.
func NewService(m *store.Manager, cfg *config.Config) *Service {
	return &Service{
		manager:                      m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// Login verifies the email/password pair and, on success, creates a new
// session and returns the token pair. Unknown email and wrong password both
// report common.ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	authStore, err := s.manager.Auth()
	if err != nil {
		return nil, err
	}

	user, ok := findUserByEmail(authStore.Data().Users, email)
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issuePayload(user)
}

// Register creates a new user with a hashed password and immediately logs it
// in. The id is assigned by the server, never taken from the caller. An
// existing email reports common.ErrEmailInUse; matching is case-sensitive.
func (s *Service) Register(ctx context.Context, email, password string, profile Profile) (*AuthPayload, error) {
	user, err := s.createUser(email, password, profile)
	if err != nil {
		return nil, err
	}
	return s.issuePayload(user)
}

// CreateUser is the admin variant of Register: it creates the account but
// issues no session.
func (s *Service) CreateUser(ctx context.Context, email, password string, profile Profile) (models.User, error) {
	user, err := s.createUser(email, password, profile)
	if err != nil {
		return models.User{}, err
	}
	return user.Public(), nil
}

func (s *Service) createUser(email, password string, profile Profile) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, common.ErrInternal
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Note:         profile.Note,
		CreatedAt:    s.now().UTC(),
	}

	err = s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		if _, exists := findUserByEmail(doc.Users, email); exists {
			return common.ErrEmailInUse
		}
		doc.Users = append(doc.Users, user)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Refresh resolves the refresh token to a session and rotates it: the old
// session is removed and a new session plus a new access token are issued.
// Old refresh tokens are single-use; unknown, already-rotated and expired
// tokens all report common.ErrInvalidToken.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthPayload, error) {
	var user models.User

	err := s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		idx := findSession(doc.Sessions, refreshToken)
		if idx < 0 {
			return common.ErrInvalidToken
		}
		sess := doc.Sessions[idx]
		if sess.Expired(s.now()) {
			return common.ErrInvalidToken
		}
		u, ok := findUserByID(doc.Users, sess.UserID)
		if !ok {
			return common.ErrInvalidToken
		}
		user = u
		doc.Sessions = append(doc.Sessions[:idx], doc.Sessions[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issuePayload(user)
}

// Logout removes the session matching refreshToken. It reports success
// whether or not a matching session existed, to avoid leaking session
// existence.
func (s *Service) Logout(ctx context.Context, refreshToken string) (bool, error) {
	err := s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		idx := findSession(doc.Sessions, refreshToken)
		if idx >= 0 {
			doc.Sessions = append(doc.Sessions[:idx], doc.Sessions[idx+1:]...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ChangePassword replaces the user's password hash after verifying the old
// password. Other active sessions for the user are left untouched.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrInternal
	}

	return s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		for i := range doc.Users {
			if doc.Users[i].ID != userID {
				continue
			}
			if err := auth.CheckPassword(doc.Users[i].PasswordHash, oldPassword); err != nil {
				return common.ErrInvalidCredentials
			}
			doc.Users[i].PasswordHash = hash
			return nil
		}
		return common.ErrInvalidCredentials
	})
}

// UpdateProfile replaces the optional profile fields of the user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, profile Profile) (models.User, error) {
	var updated models.User
	err := s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		for i := range doc.Users {
			if doc.Users[i].ID != userID {
				continue
			}
			doc.Users[i].FirstName = profile.FirstName
			doc.Users[i].LastName = profile.LastName
			doc.Users[i].Note = profile.Note
			updated = doc.Users[i]
			return nil
		}
		return common.ErrNotFound
	})
	if err != nil {
		return models.User{}, err
	}
	return updated.Public(), nil
}

// DeleteUser removes the user record. Sessions referencing the user are
// deliberately left in place: they self-expire, and Refresh rejects them as
// soon as the user lookup fails.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		for i := range doc.Users {
			if doc.Users[i].ID == userID {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return common.ErrNotFound
	})
}

// Users lists all accounts without password hashes.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	authStore, err := s.manager.Auth()
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(authStore.Data().Users))
	for _, u := range authStore.Data().Users {
		users = append(users, u.Public())
	}
	return users, nil
}

// GetUser returns one account without its password hash.
func (s *Service) GetUser(ctx context.Context, userID string) (models.User, error) {
	authStore, err := s.manager.Auth()
	if err != nil {
		return models.User{}, err
	}
	if u, ok := findUserByID(authStore.Data().Users, userID); ok {
		return u.Public(), nil
	}
	return models.User{}, common.ErrNotFound
}

// VerifyAccessToken checks signature and expiry of an access token and
// returns the user id it was issued for.
func (s *Service) VerifyAccessToken(tokenString string) (string, error) {
	return auth.GetUserIDFromToken(tokenString, s.jwtSecret)
}

// PruneExpiredSessions drops sessions whose age exceeds the refresh-token
// lifetime and reports how many were removed. The store is rewritten only
// when something was dropped. Intended to run right after the auth store is
// loaded; there is no timer-based eviction.
func (s *Service) PruneExpiredSessions(ctx context.Context) (int, error) {
	authStore, err := s.manager.Auth()
	if err != nil {
		return 0, err
	}

	now := s.now()
	stale := 0
	for _, sess := range authStore.Data().Sessions {
		if now.Sub(sess.CreatedAt) >= s.refreshTokenValidityDuration {
			stale++
		}
	}
	if stale == 0 {
		return 0, nil
	}

	err = s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		kept := make([]models.Session, 0, len(doc.Sessions))
		for _, sess := range doc.Sessions {
			if now.Sub(sess.CreatedAt) < s.refreshTokenValidityDuration {
				kept = append(kept, sess)
			}
		}
		doc.Sessions = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stale, nil
}

// --- helpers below ---

// issuePayload creates and persists a new session for the user and mints the
// matching token pair.
func (s *Service) issuePayload(user models.User) (*AuthPayload, error) {
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}

	now := s.now().UTC()
	session := models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: refresh,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.refreshTokenValidityDuration),
	}

	err = s.manager.UpdateAuth(func(doc *models.AuthDocument) error {
		doc.Sessions = append(doc.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	access, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &AuthPayload{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.Public(),
	}, nil
}

func findUserByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func findUserByID(users []models.User, id string) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func findSession(sessions []models.Session, refreshToken string) int {
	for i, sess := range sessions {
		if sess.RefreshToken == refreshToken {
			return i
		}
	}
	return -1
}
