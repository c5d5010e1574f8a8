package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	ListByResource(ctx context.Context, rt model.AuditResourceType, resourceID int64, limit int) ([]model.AuditLog, error)
}
