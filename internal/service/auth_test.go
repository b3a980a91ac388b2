package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/victim-store/internal/domain"
	"github.com/msomdec/victim-store/internal/repository/sqlite"
	"github.com/msomdec/victim-store/internal/service"
	"github.com/msomdec/victim-store/internal/validation"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests-0123456789"
	testIssuer    = "victim-store-test"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), validation.New(), testJWTSecret, testIssuer, 4)
	return auth, db
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "new@example.com", "New User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "dup@example.com", "User 1", "password123", "password123")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = auth.Register(ctx, "dup@example.com", "User 2", "password456", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "weak@example.com", "Weak", "short", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "mismatch@example.com", "Mismatch", "password123", "different456")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for password mismatch, got %v", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		display  string
		password string
	}{
		{"empty email", "", "Name", "password123"},
		{"empty display name", "a@b.com", "", "password123"},
		{"empty password", "a@b.com", "Name", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.email, tc.display, tc.password, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "login@example.com", "Login User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, token, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "wrongpw@example.com", "User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err = auth.Login(ctx, "wrongpw@example.com", "wrongpassword")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Login(ctx, "nobody@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_GenerateAndValidate(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "jwt@example.com", "JWT User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, token, err := auth.Login(ctx, "jwt@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if userID != user.ID {
		t.Fatalf("expected user ID %d, got %d", user.ID, userID)
	}
}

func TestAuthService_JWT_InvalidToken(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ValidateToken("not-a-valid-jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_JWT_TamperedToken(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "tamper@example.com", "Tamper", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, token, err := auth.Login(ctx, "tamper@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Tamper with the token by flipping several characters in the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	_, err = auth.ValidateToken(tampered)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_JWT_WrongSecret(t *testing.T) {
	auth1, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth1.Register(ctx, "secret@example.com", "Secret", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, token, err := auth1.Login(ctx, "secret@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Create a second auth service with a different secret.
	db2 := newTestDB(t)
	auth2 := service.NewAuthService(db2.Users(), validation.New(), "different-secret-0123456789-abcdef", testIssuer, 4)

	_, err = auth2.ValidateToken(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_JWT_WrongIssuer(t *testing.T) {
	auth, db := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "iss@example.com", "Issuer", "password123", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, token, err := auth.Login(ctx, "iss@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := service.NewAuthService(db.Users(), validation.New(), testJWTSecret, "someone-else", 4)
	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign issuer, got %v", err)
	}
}

func TestAuthService_Login_RecordsLastLogin(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "last@example.com", "Last", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, _, err := auth.Login(ctx, "last@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.LastLoginAt == nil {
		t.Fatal("expected LastLoginAt to be set on the returned user")
	}

	stored, err := auth.GetUserByID(ctx, registered.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Fatal("expected LastLoginAt to be persisted")
	}
}

func TestAuthService_Register_ReportsFields(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "not-an-email", "", "password123", "password999")
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	for _, field := range []string{"email", "displayName", "confirmPassword"} {
		if !verr.HasField(field) {
			t.Fatalf("expected field %q in %v", field, verr.Fields)
		}
	}
}
