package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/victim-store/internal/domain"
	"github.com/msomdec/victim-store/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// AuthService handles operator registration, login, and JWT token operations.
type AuthService struct {
	users      domain.UserRepository
	validate   *validation.Validator
	jwtSecret  []byte
	issuer     string
	bcryptCost int
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, validate *validation.Validator, jwtSecret, issuer string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		validate:   validate,
		jwtSecret:  []byte(jwtSecret),
		issuer:     issuer,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type registerInput struct {
	Email           string `json:"email" validate:"required,email,max=254"`
	DisplayName     string `json:"displayName" validate:"required,max=100"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// Register creates a new user account after validating inputs.
func (s *AuthService) Register(ctx context.Context, email, displayName, password, confirmPassword string) (*domain.User, error) {
	in := registerInput{
		Email:           email,
		DisplayName:     displayName,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user with a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate jwt: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}
	user.LastLoginAt = &now

	return user, token, nil
}

// ValidateToken parses and validates a JWT token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
