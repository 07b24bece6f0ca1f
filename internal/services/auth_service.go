package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"golang.org/x/crypto/bcrypt"

	"github.com/anonto42/nano-social/backend/internal/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

var usernameCleaner = regexp.MustCompile(`[^a-zA-Z0-9]`)

// IDTokenVerifier is satisfied by the Firebase auth client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users    repositories.UserRepository
	settings repositories.SettingsRepository
	tokens   *auth.TokenIssuer
	verifier IDTokenVerifier
}

// NewAuthService builds the service. verifier may be nil when Firebase is
// not configured.
func NewAuthService(users repositories.UserRepository, settings repositories.SettingsRepository, tokens *auth.TokenIssuer, verifier IDTokenVerifier) *AuthService {
	return &AuthService{
		users:    users,
		settings: settings,
		tokens:   tokens,
		verifier: verifier,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}
	user := &models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
		Gender:   req.Gender,
		Role:     models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.ensureSettings(ctx, user.ID)
	logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return s.respond(user)
}

// Login accepts a username or an email. Unknown users and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetUserByLogin(ctx, req.Login)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return nil, errors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}
	return s.respond(user)
}

// FirebaseLogin exchanges a Firebase ID token for an API token.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*AuthResponse, error) {
	if s.verifier == nil {
		return nil, errors.Unauthorized("firebase login is not enabled")
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnauthorized, "invalid firebase token")
	}
	user, err := s.UserForFirebaseToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.respond(user)
}

// UserForFirebaseToken returns the local user linked to the token's UID,
// creating one on first sign-in.
func (s *AuthService) UserForFirebaseToken(ctx context.Context, token *firebaseauth.Token) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	uid := token.UID

	// An existing local account with the same email is linked, not duplicated.
	if email != "" {
		existing, err := s.users.GetUserByEmail(ctx, email)
		if err == nil && existing.FirebaseUID == nil {
			existing.FirebaseUID = &uid
			if err := s.users.UpdateUser(ctx, existing); err != nil {
				return nil, err
			}
			logger.Info("Firebase account linked", "user_id", existing.ID, "firebase_uid", uid)
			return existing, nil
		}
		if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
			return nil, err
		}
	} else {
		email = uid + "@firebase.local"
	}
	user = &models.User{
		Username:    firebaseUsername(email, uid),
		FullName:    name,
		Email:       strings.ToLower(email),
		FirebaseUID: &uid,
		Role:        models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.ensureSettings(ctx, user.ID)
	logger.Info("Firebase user provisioned", "user_id", user.ID, "firebase_uid", uid)
	return user, nil
}

func firebaseUsername(email, uid string) string {
	local := usernameCleaner.ReplaceAllString(strings.SplitN(email, "@", 2)[0], "")
	if len(local) > 30 {
		local = local[:30]
	}
	suffix := usernameCleaner.ReplaceAllString(uid, "")
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("%s%s", local, strings.ToLower(suffix))
}

func (s *AuthService) ensureSettings(ctx context.Context, userID uint) {
	if _, err := s.settings.GetOrCreateSettings(ctx, userID); err != nil {
		logger.Warn("Failed to create default settings", "user_id", userID, "error", err)
	}
}

func (s *AuthService) respond(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, errors.Internal(err, "failed to issue token")
	}
	return &AuthResponse{Token: token, User: user}, nil
}
