package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nakliye/internal/model"
	"nakliye/internal/repository"

	"github.com/google/uuid"
)

type NoteRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

type NoteResponse struct {
	ID         uuid.UUID  `json:"id"`
	CompanyID  uuid.UUID  `json:"company_id"`
	AuthorID   *uuid.UUID `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NoteService manages the internal admin notes kept on companies.
type NoteService interface {
	ListNotes(ctx context.Context, companyID string) ([]NoteResponse, error)
	CreateNote(ctx context.Context, actor Actor, companyID string, req NoteRequest) (NoteResponse, error)
	UpdateNote(ctx context.Context, actor Actor, id string, req NoteRequest) (NoteResponse, error)
	DeleteNote(ctx context.Context, actor Actor, id string) error
}

type noteService struct {
	companyRepo repository.CompanyRepository
	audit       auditWriter
	txManager   repository.TransactionManager
}

func NewNoteService(companyRepo repository.CompanyRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) NoteService {
	return &noteService{companyRepo: companyRepo, audit: auditWriter{repo: auditRepo}, txManager: txManager}
}

func (s *noteService) ListNotes(ctx context.Context, companyID string) ([]NoteResponse, error) {
	cid, err := parseID(companyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.companyRepo.FindByID(ctx, cid); err != nil {
		return nil, repoErr(err)
	}
	notes, err := s.companyRepo.ListNotes(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %w", err)
	}
	res := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		res = append(res, toNoteResponse(&notes[i]))
	}
	return res, nil
}

func (s *noteService) CreateNote(ctx context.Context, actor Actor, companyID string, req NoteRequest) (NoteResponse, error) {
	cid, err := parseID(companyID)
	if err != nil {
		return NoteResponse{}, err
	}
	company, err := s.companyRepo.FindByID(ctx, cid)
	if err != nil {
		return NoteResponse{}, repoErr(err)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return NoteResponse{}, invalid("content", "cannot be empty")
	}

	note := &model.CompanyNote{CompanyID: company.ID, AuthorID: actor.userRef(), Content: content}
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.CreateNote(txCtx, note); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionCreateNote, note.ID.String(), company.Name, map[string]interface{}{
			"company_id": company.ID,
		})
	})
	if err != nil {
		return NoteResponse{}, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) UpdateNote(ctx context.Context, actor Actor, id string, req NoteRequest) (NoteResponse, error) {
	note, err := s.find(ctx, id)
	if err != nil {
		return NoteResponse{}, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return NoteResponse{}, invalid("content", "cannot be empty")
	}
	note.Content = content

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.UpdateNote(txCtx, note); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionUpdateNote, note.ID.String(), "", map[string]interface{}{
			"company_id": note.CompanyID,
		})
	})
	if err != nil {
		return NoteResponse{}, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) DeleteNote(ctx context.Context, actor Actor, id string) error {
	note, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.DeleteNote(txCtx, note.ID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		return s.audit.write(txCtx, actor, model.ActionDeleteNote, note.ID.String(), "", map[string]interface{}{
			"company_id": note.CompanyID,
		})
	})
}

func (s *noteService) find(ctx context.Context, id string) (*model.CompanyNote, error) {
	nid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	note, err := s.companyRepo.FindNote(ctx, nid)
	if err != nil {
		return nil, repoErr(err)
	}
	return note, nil
}

func toNoteResponse(n *model.CompanyNote) NoteResponse {
	res := NoteResponse{
		ID:        n.ID,
		CompanyID: n.CompanyID,
		AuthorID:  n.AuthorID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Author != nil {
		res.AuthorName = n.Author.FullName
	}
	return res
}
