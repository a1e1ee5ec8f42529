package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nakliye/internal/location"
	"nakliye/internal/model"
	"nakliye/internal/repository"
	"nakliye/internal/textfold"
	"nakliye/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type RegisterRequest struct {
	CompanyName   string           `json:"company_name" binding:"required,max=255"`
	TaxNumber     string           `json:"tax_number" binding:"max=20"`
	TaxOffice     string           `json:"tax_office" binding:"max=100"`
	ContactPerson string           `json:"contact_person" binding:"required,max=255"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone" binding:"max=30"`
	Password      string           `json:"password" binding:"required,min=8"`
	Address       location.Address `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone"`
	Role      string          `json:"role"`
	CompanyID *uuid.UUID      `json:"company_id,omitempty"`
	Company   *CompanyProfile `json:"company,omitempty"`
}

// CompanyProfile is the short company view attached to a signed-in user.
type CompanyProfile struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
}

type AuthResponse struct {
	AccessToken      string       `json:"access_token"`
	AccessExpiresAt  time.Time    `json:"access_expires_at"`
	RefreshToken     string       `json:"refresh_token"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	User             UserResponse `json:"user"`
}

// --- Interface ---

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, raw string) (*AuthResponse, error)
	Logout(ctx context.Context, raw string) error
	Me(ctx context.Context, actor Actor) (*UserResponse, error)
	EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error)
}

// --- Implementation ---

type authService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	audit       auditWriter
	txManager   repository.TransactionManager
	tokens      *token.Manager
	refreshTTL  time.Duration
	resolver    *location.Resolver
	events      EventPublisher
	now         func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	tokens *token.Manager,
	refreshTTL time.Duration,
	resolver *location.Resolver,
	events EventPublisher,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		audit:       auditWriter{repo: auditRepo},
		txManager:   txManager,
		tokens:      tokens,
		refreshTTL:  refreshTTL,
		resolver:    resolver,
		events:      publisherOrNop(events),
		now:         time.Now,
	}
}

// Register creates a pending company together with its first user and signs the
// user in.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	addr, err := resolveAddress(s.resolver, "address", req.Address)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(req.CompanyName)
	company := &model.Company{
		Name:          name,
		TaxNumber:     strings.TrimSpace(req.TaxNumber),
		TaxOffice:     strings.TrimSpace(req.TaxOffice),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         email,
		Country:       addr.Country,
		City:          addr.City,
		District:      addr.District,
		WorkingRoutes: []string{},
		Status:        model.CompanyPending,
		SearchText:    textfold.Join(name, addr.City, addr.District),
	}
	user := &model.User{
		Email:    email,
		FullName: company.ContactPerson,
		Phone:    company.Phone,
		Password: string(hashed),
		Role:     token.RoleCompany,
	}

	var res *AuthResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Create(txCtx, company); err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}
		user.CompanyID = &company.ID
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		actor := Actor{UserID: user.ID, Role: user.Role, CompanyID: user.CompanyID}
		if err := s.audit.write(txCtx, actor, model.ActionRegisterCompany, company.ID.String(), company.Name, map[string]interface{}{
			"email": email,
			"city":  company.City,
		}); err != nil {
			return err
		}
		user.Company = company
		issued, err := s.issue(txCtx, user)
		res = issued
		return err
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventCompanyRegistered, CompanyProfile{ID: company.ID, Name: company.Name, Status: company.Status})
	return res, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

// Refresh rotates a refresh token. Presenting a revoked token revokes every token
// of its user.
func (s *authService) Refresh(ctx context.Context, raw string) (*AuthResponse, error) {
	if raw == "" {
		return nil, ErrInvalidRefreshToken
	}
	stored, err := s.userRepo.GetRefreshToken(ctx, token.HashRefreshToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	now := s.now()
	if stored.RevokedAt != nil {
		log.Printf("WARNING: revoked refresh token reused for user %s, revoking all sessions", stored.UserID)
		if err := s.userRepo.RevokeUserTokens(ctx, stored.UserID, now); err != nil {
			log.Printf("ERROR: failed to revoke sessions of user %s: %v", stored.UserID, err)
		}
		return nil, ErrInvalidRefreshToken
	}
	if !now.Before(stored.ExpiresAt) {
		return nil, ErrInvalidRefreshToken
	}

	var res *AuthResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.RevokeRefreshToken(txCtx, stored.ID, now); err != nil {
			return err
		}
		user, err := s.userRepo.GetByID(txCtx, stored.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		res, err = s.issue(txCtx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *authService) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	stored, err := s.userRepo.GetRefreshToken(ctx, token.HashRefreshToken(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if stored.RevokedAt != nil {
		return nil
	}
	return s.userRepo.RevokeRefreshToken(ctx, stored.ID, s.now())
}

func (s *authService) Me(ctx context.Context, actor Actor) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, repoErr(err)
	}
	res := toUserResponse(user)
	return &res, nil
}

// EnsureAdmin creates the platform admin unless the email is already registered.
func (s *authService) EnsureAdmin(ctx context.Context, email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if len(password) < 8 {
		return false, invalid("password", "must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &model.User{
		Email:    email,
		FullName: fullName,
		Password: string(hashed),
		Role:     token.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*AuthResponse, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = user.CompanyID.String()
	}
	access, accessExp, err := s.tokens.Issue(user.ID.String(), user.Role, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw, hash, err := token.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshExp := s.now().Add(s.refreshTTL)
	if err := s.userRepo.CreateRefreshToken(ctx, &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     raw,
		RefreshExpiresAt: refreshExp,
		User:             toUserResponse(user),
	}, nil
}

func toUserResponse(u *model.User) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
	if u.Company != nil {
		res.Company = &CompanyProfile{ID: u.Company.ID, Name: u.Company.Name, Status: u.Company.Status}
	}
	return res
}
