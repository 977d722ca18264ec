package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nestify/internal/auth"
	"nestify/internal/cache"
	apperrors "nestify/internal/errors"
	"nestify/internal/logging"
	"nestify/internal/media"
	"nestify/internal/model"
	"nestify/internal/repository"
)

const bcryptCost = 10

// dummyPasswordHash is compared against when an email is unknown so that
// both login failures cost one bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("nestify-unknown-account"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
})

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" form:"phone" validate:"required,phone"`
	Age      int    `json:"age" form:"age" validate:"required,gte=1,lte=120"`
	Location string `json:"location" form:"location" validate:"max=255"`
	Gender   string `json:"gender" form:"gender" validate:"omitempty,oneof=male female other"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=user broker"`
}

// ChangePasswordInput is the password change payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, photo *multipart.FileHeader) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	media      media.Delegate
	users      userCache
	validate   Validator

	comparePassword func(hash, password []byte) error
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mediaDelegate media.Delegate,
	cache *cache.Client,
	validate Validator,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		media:      mediaDelegate,
		users:      userCache{cache: cache},
		validate:   validate,

		comparePassword: bcrypt.CompareHashAndPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a new user with a hashed password. An optional photo is
// uploaded first and released again if the user cannot be stored.
func (s *authService) Register(ctx context.Context, in RegisterInput, photo *multipart.FileHeader) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         model.Role(in.Role),
		Age:          in.Age,
		Phone:        in.Phone,
		Location:     strings.TrimSpace(in.Location),
		Gender:       in.Gender,
	}

	if photo != nil {
		url, err := s.media.Upload(ctx, photo)
		if err != nil {
			return nil, err
		}
		user.Photo = url
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if user.Photo != "" {
			logging.Ctx(ctx).Warn().Str("email", user.Email).Msg("registration failed after photo upload, releasing photo")
			releaseImages(ctx, s.media, []string{user.Photo})
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login authenticates a user and returns a signed access token. An unknown
// email and a wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.comparePassword(dummyPasswordHash(), []byte(password))
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.comparePassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves verified claims to a live user. Revoked tokens and
// users that no longer exist are rejected.
func (s *authService) Authenticate(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if s.tokenStore.IsRevoked(ctx, claims.ID) {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "token has been revoked")
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	if user := s.users.get(ctx, id); user != nil {
		return user, nil
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "user no longer exists")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	s.users.set(ctx, user)
	return user, nil
}

// Logout revokes the token until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return apperrors.ErrUnauthorized
	}
	if err := s.tokenStore.Revoke(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, in ChangePasswordInput) error {
	if err := s.validate.Validate(in); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return lookupErr(err, "user")
	}
	if err := s.comparePassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return apperrors.New(apperrors.ErrInvalidCredentials, "current password is incorrect")
	}

	hashed, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user, "password"); err != nil {
		return lookupErr(err, "user")
	}
	return nil
}
