package model

import "time"

type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionCancelOrder       AuditAction = "CANCEL_ORDER"
	AuditActionApproveRestaurant AuditAction = "APPROVE_RESTAURANT"
)

type AuditResourceType string

const (
	AuditResourceOrder      AuditResourceType = "order"
	AuditResourceRestaurant AuditResourceType = "restaurant"
)

// AuditLog records who changed what. Written on admin/merchant order status
// transitions, cancellations and restaurant approval flips.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	ActorRole    Role              `gorm:"type:varchar(20);not null" json:"actor_role"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	Detail       string            `gorm:"type:text" json:"detail"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
