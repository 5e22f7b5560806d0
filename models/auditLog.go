package models

import (
	"context"
	"time"

	"github.com/dayflowhq/dayflow_backend/config"
	"github.com/dayflowhq/dayflow_backend/utils"
)

type AuditLog struct {
	ID           int               `gorm:"primary_key" json:"id"`
	UserId       int               `gorm:"index;not null" json:"user_id"`
	Action       AuditAction       `gorm:"size:20;not null" json:"action"`
	ResourceType AuditResourceType `gorm:"size:20;not null" json:"resource_type"`
	ResourceId   int               `json:"resource_id"`
	Details      string            `gorm:"type:text" json:"details"`
	IpAddress    string            `gorm:"size:45" json:"ip_address"`
	UserAgent    string            `gorm:"size:255" json:"user_agent"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

// RecordAudit writes an audit entry for the current user. Best effort: a
// failed audit write is logged, never surfaced to the caller.
func RecordAudit(ctx context.Context, action AuditAction, resourceType AuditResourceType, resourceId int, details map[string]any) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId == 0 {
		return
	}

	detailsJSON := ""
	if details != nil {
		if s, err := utils.MarshalToJSON(details); err == nil {
			detailsJSON = s
		}
	}

	ip, _ := utils.GetClientIpFromContext(ctx)
	userAgent, _ := utils.GetUserAgentFromContext(ctx)

	entry := AuditLog{
		UserId:       userId,
		Action:       action,
		ResourceType: resourceType,
		ResourceId:   resourceId,
		Details:      detailsJSON,
		IpAddress:    ip,
		UserAgent:    userAgent,
	}

	db := config.GetDB()
	if db == nil {
		return
	}
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		config.LogError(config.GetLogger(), "auditLog.go", "RecordAudit", string(action), resourceId, err)
	}
}
