package staff

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/auth"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/security"
)

// Service implements the staff portal gate. The single credential pair comes
// from configuration; this is a placeholder gate for a one-operator store,
// not a user system.
type Service struct {
	username     string
	passwordHash string
	jwtCfg       config.JWTConfig
	catalog      *catalog.Store
}

// NewService hashes the configured password up front so login verification
// always runs argon2, keeping timing uniform.
func NewService(staffCfg config.StaffConfig, jwtCfg config.JWTConfig, store *catalog.Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if staffCfg.Username == "" || staffCfg.Password == "" {
		return nil, fmt.Errorf("staff credentials required")
	}
	hash, err := security.HashPassword(staffCfg.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing staff password: %w", err)
	}
	return &Service{
		username:     staffCfg.Username,
		passwordHash: hash,
		jwtCfg:       jwtCfg,
		catalog:      store,
	}, nil
}

// Login verifies the credential pair and mints a staff access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK, err := security.VerifyPassword(password, s.passwordHash)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying credentials")
	}
	if !userOK || !passOK {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintStaffToken(s.jwtCfg, time.Now(), auth.StaffTokenPayload{Username: username})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting staff token")
	}
	return token, nil
}

// DashboardStats summarizes the inventory for the staff dashboard.
type DashboardStats struct {
	TotalProducts    int               `json:"total_products"`
	ActiveCategories int               `json:"active_categories"`
	Categories       []string          `json:"categories"`
	Inventory        []catalog.Product `json:"inventory"`
}

// Dashboard derives the stat cards and inventory listing from the catalog.
func (s *Service) Dashboard(_ context.Context) DashboardStats {
	categories := s.catalog.Categories()
	return DashboardStats{
		TotalProducts:    s.catalog.Len(),
		ActiveCategories: len(categories),
		Categories:       categories,
		Inventory:        s.catalog.All(),
	}
}
