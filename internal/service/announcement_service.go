package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nakliye/internal/model"
	"nakliye/internal/repository"
)

type AnnouncementRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
}

type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, publishedOnly bool, page, limit int) ([]model.Announcement, int64, error)
	GetAnnouncement(ctx context.Context, id string, publishedOnly bool) (*model.Announcement, error)
	CreateAnnouncement(ctx context.Context, actor Actor, req AnnouncementRequest) (*model.Announcement, error)
	UpdateAnnouncement(ctx context.Context, actor Actor, id string, req AnnouncementRequest) (*model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, actor Actor, id string) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	audit     auditWriter
	txManager repository.TransactionManager
	now       func() time.Time
}

func NewAnnouncementService(repo repository.AnnouncementRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) AnnouncementService {
	return &announcementService{repo: repo, audit: auditWriter{repo: auditRepo}, txManager: txManager, now: time.Now}
}

func (s *announcementService) ListAnnouncements(ctx context.Context, publishedOnly bool, page, limit int) ([]model.Announcement, int64, error) {
	return s.repo.List(ctx, publishedOnly, page, limit)
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id string, publishedOnly bool) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !a.IsPublished {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, actor Actor, req AnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{CreatedBy: actor.userRef()}
	if err := s.apply(a, req); err != nil {
		return nil, err
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, a); err != nil {
			return fmt.Errorf("failed to create announcement: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateAnnouncement, a.ID.String(), a.Title, map[string]interface{}{
			"is_published": a.IsPublished,
		})
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, actor Actor, id string, req AnnouncementRequest) (*model.Announcement, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(a, req); err != nil {
		return nil, err
	}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to update announcement: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateAnnouncement, a.ID.String(), a.Title, map[string]interface{}{
			"is_published": a.IsPublished,
		})
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, actor Actor, id string) error {
	a, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, a.ID); err != nil {
			return fmt.Errorf("failed to delete announcement: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeleteAnnouncement, a.ID.String(), a.Title, nil)
	})
}

// apply copies req onto a. PublishedAt is stamped the first time an item is published.
func (s *announcementService) apply(a *model.Announcement, req AnnouncementRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("title", "cannot be empty")
	}
	a.Title = title
	a.Content = req.Content
	a.IsPublished = req.IsPublished
	if a.IsPublished && a.PublishedAt == nil {
		now := s.now()
		a.PublishedAt = &now
	}
	return nil
}

func (s *announcementService) find(ctx context.Context, id string) (*model.Announcement, error) {
	aid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, aid)
	if err != nil {
		return nil, repoErr(err)
	}
	return a, nil
}
