package mapper

import (
	"encoding/json"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/model"

	"gorm.io/datatypes"
)

type AuditEventMapper struct{}

func NewAuditEventMapper() *AuditEventMapper {
	return &AuditEventMapper{}
}

func (m *AuditEventMapper) ToEntity(a *model.AuditEvent) *entity.AuditEvent {
	if a == nil {
		return nil
	}
	var details map[string]any
	if len(a.Details) > 0 {
		_ = json.Unmarshal(a.Details, &details)
	}
	return &entity.AuditEvent{
		Id:        a.Id,
		Topic:     a.Topic,
		Message:   a.Message,
		Details:   details,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditEventMapper) ToModel(a *entity.AuditEvent) *model.AuditEvent {
	if a == nil {
		return nil
	}
	var details datatypes.JSON
	if a.Details != nil {
		raw, err := json.Marshal(a.Details)
		if err == nil {
			details = raw
		}
	}
	return &model.AuditEvent{
		Id:        a.Id,
		Topic:     a.Topic,
		Message:   a.Message,
		Details:   details,
		CreatedAt: a.CreatedAt,
	}
}
