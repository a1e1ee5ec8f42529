package service

import (
	"context"
	"fmt"
	"strings"

	"nakliye/internal/location"
	"nakliye/internal/model"
	"nakliye/internal/repository"
	"nakliye/internal/textfold"
)

type ContactRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Category    string           `json:"category" binding:"required,max=100"`
	Phone       string           `json:"phone" binding:"max=30"`
	Email       string           `json:"email" binding:"omitempty,email"`
	Website     string           `json:"website" binding:"max=255"`
	Address     location.Address `json:"address"`
	FullAddress string           `json:"full_address"`
	Notes       string           `json:"notes"`
	IsActive    *bool            `json:"is_active"`
}

type ContactQuery struct {
	City     string
	Category string
	Search   string
	Page     int
	Limit    int
}

// ContactService manages the public logistics directory.
type ContactService interface {
	ListContacts(ctx context.Context, q ContactQuery, activeOnly bool) ([]model.DirectoryContact, int64, error)
	CreateContact(ctx context.Context, actor Actor, req ContactRequest) (*model.DirectoryContact, error)
	UpdateContact(ctx context.Context, actor Actor, id string, req ContactRequest) (*model.DirectoryContact, error)
	DeleteContact(ctx context.Context, actor Actor, id string) error
}

type contactService struct {
	repo      repository.ContactRepository
	audit     auditWriter
	txManager repository.TransactionManager
	resolver  *location.Resolver
}

func NewContactService(repo repository.ContactRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager, resolver *location.Resolver) ContactService {
	return &contactService{repo: repo, audit: auditWriter{repo: auditRepo}, txManager: txManager, resolver: resolver}
}

func (s *contactService) ListContacts(ctx context.Context, q ContactQuery, activeOnly bool) ([]model.DirectoryContact, int64, error) {
	contacts, total, err := s.repo.List(ctx, repository.ContactFilter{
		City:       strings.TrimSpace(q.City),
		Category:   strings.TrimSpace(q.Category),
		Search:     textfold.Pattern(q.Search),
		ActiveOnly: activeOnly,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return contacts, total, nil
}

func (s *contactService) CreateContact(ctx context.Context, actor Actor, req ContactRequest) (*model.DirectoryContact, error) {
	c := &model.DirectoryContact{IsActive: true}
	if err := s.apply(c, req); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, c); err != nil {
			return fmt.Errorf("failed to create contact: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateContact, c.ID.String(), c.Name, map[string]interface{}{
			"category": c.Category,
			"city":     c.City,
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) UpdateContact(ctx context.Context, actor Actor, id string, req ContactRequest) (*model.DirectoryContact, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(c, req); err != nil {
		return nil, err
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, c); err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateContact, c.ID.String(), c.Name, map[string]interface{}{
			"category": c.Category,
			"city":     c.City,
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) DeleteContact(ctx context.Context, actor Actor, id string) error {
	c, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, c.ID); err != nil {
			return fmt.Errorf("failed to delete contact: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeleteContact, c.ID.String(), c.Name, nil)
	})
}

func (s *contactService) apply(c *model.DirectoryContact, req ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name", "cannot be empty")
	}
	addr, err := resolveAddress(s.resolver, "address", req.Address)
	if err != nil {
		return err
	}

	c.Name = name
	c.Category = strings.TrimSpace(req.Category)
	c.Phone = strings.TrimSpace(req.Phone)
	c.Email = strings.TrimSpace(req.Email)
	c.Website = strings.TrimSpace(req.Website)
	c.Country, c.City, c.District = addr.Country, addr.City, addr.District
	c.FullAddress = req.FullAddress
	c.Notes = req.Notes
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	c.SearchText = textfold.Join(c.Name, c.Category, c.City, c.District)
	return nil
}

func (s *contactService) find(ctx context.Context, id string) (*model.DirectoryContact, error) {
	cid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return nil, repoErr(err)
	}
	return c, nil
}
