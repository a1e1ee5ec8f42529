package service

import (
	"context"
	"time"

	"nakliye/internal/model"
	"nakliye/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditQuery struct {
	Action   string
	EntityID string
	Page     int
	Limit    int
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, q AuditQuery) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// GetAuditLogs returns audit rows newest first.
func (s *auditService) GetAuditLogs(ctx context.Context, q AuditQuery) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, repository.AuditFilter{
		Action:   q.Action,
		EntityID: q.EntityID,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for i := range logs {
		res = append(res, toAuditResponse(&logs[i]))
	}
	return res, total, nil
}

func toAuditResponse(l *model.AuditLog) AuditLogResponse {
	name := "System"
	userID := ""
	if l.User != nil {
		name = l.User.FullName
	}
	if l.UserID != nil {
		userID = l.UserID.String()
	}
	return AuditLogResponse{
		ID:         l.ID.String(),
		UserID:     userID,
		UserName:   name,
		Action:     l.Action,
		EntityID:   l.EntityID,
		EntityName: l.EntityName,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}
