package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nakliye/internal/model"
	"nakliye/internal/repository"
)

// auditWriter records audit rows inside the caller's transaction.
type auditWriter struct {
	repo repository.AuditRepository
}

func (w auditWriter) write(ctx context.Context, actor Actor, action, entityID, entityName string, details interface{}) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	entry := &model.AuditLog{
		UserID:     actor.userRef(),
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(raw),
	}
	if err := w.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
