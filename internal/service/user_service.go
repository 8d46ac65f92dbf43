package service

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"stokgudang/backend/internal/middleware"
	"stokgudang/backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string            `json:"token"`
	User  model.UserAccount `json:"user"`
}

// UserService authenticates against the static credential table. There is no
// user management: the table is seeded in code at startup with passwords
// overridable through environment variables.
type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	GetAccount(username string) (model.UserAccount, bool)
}

type userService struct {
	accounts map[string]model.UserAccount
}

// NewUserService seeds the static credential table and hashes every password
// with bcrypt so login uses the same comparison path a real user table would.
func NewUserService() UserService {
	return &userService{accounts: seedAccounts()}
}

// seedAccounts builds the fixed account table. DEV_PIC_PASSWORD and
// DEV_GUEST_PASSWORD override the defaults; when unset a warning is printed.
func seedAccounts() map[string]model.UserAccount {
	picPwd := envOr("DEV_PIC_PASSWORD", "gudang123")
	guestPwd := envOr("DEV_GUEST_PASSWORD", "tamu123")
	if os.Getenv("DEV_PIC_PASSWORD") == "" || os.Getenv("DEV_GUEST_PASSWORD") == "" {
		log.Println("WARNING: using default credentials. Set DEV_PIC_PASSWORD and DEV_GUEST_PASSWORD to override.")
	}

	seeds := []struct {
		username    string
		password    string
		displayName string
		role        string
		warehouses  []string
	}{
		{"pic-a", picPwd, "PIC Gudang A", model.RolePIC, []string{model.GroupGudangA}},
		{"pic-bcd", picPwd, "PIC Gudang BCD", model.RolePIC, []string{model.GroupGudangBCD}},
		{"pic-e", picPwd, "PIC Gudang E", model.RolePIC, []string{model.GroupGudangBad}},
		{"kepala", picPwd, "Kepala Gudang", model.RolePIC, model.WarehouseGroups()},
		{"tamu", guestPwd, "Tamu Gudang", model.RoleGuest, model.WarehouseGroups()},
	}

	accounts := make(map[string]model.UserAccount, len(seeds))
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password for %s: %v", seed.username, err)
		}
		accounts[seed.username] = model.UserAccount{
			Username:    seed.username,
			Password:    string(hash),
			DisplayName: seed.displayName,
			Role:        seed.role,
			Warehouses:  seed.warehouses,
		}
	}
	return accounts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *userService) Login(_ context.Context, req LoginRequest) (*TokenResponse, error) {
	account, ok := s.accounts[req.Username]
	if !ok {
		return nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	// Generate JWT Token carrying the allowed warehouse groups so the inbox
	// filter never has to re-read ambient session state
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        account.Username,
		"name":       account.DisplayName,
		"role":       account.Role,
		"warehouses": account.Warehouses,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})

	// Same secret source as the validation middleware so the two can never
	// diverge
	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to sign token")
	}

	return &TokenResponse{Token: signed, User: account}, nil
}

func (s *userService) GetAccount(username string) (model.UserAccount, bool) {
	account, ok := s.accounts[username]
	return account, ok
}
