package mapper

import (
	"encoding/json"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/model"

	"gorm.io/datatypes"
)

type RetentionLogMapper struct{}

func NewRetentionLogMapper() *RetentionLogMapper {
	return &RetentionLogMapper{}
}

func (m *RetentionLogMapper) ToEntity(l *model.RetentionLog) *entity.RetentionLog {
	if l == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(l.Metadata) > 0 {
		// Corrupt metadata is left nil rather than failing the read.
		_ = json.Unmarshal(l.Metadata, &metadata)
	}
	return &entity.RetentionLog{
		Id:          l.Id,
		UserId:      l.UserId,
		Action:      l.Action,
		Reason:      l.Reason,
		Metadata:    metadata,
		PerformedBy: l.PerformedBy,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *RetentionLogMapper) ToModel(l *entity.RetentionLog) *model.RetentionLog {
	if l == nil {
		return nil
	}
	var metadata datatypes.JSON
	if l.Metadata != nil {
		raw, err := json.Marshal(l.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.RetentionLog{
		Id:          l.Id,
		UserId:      l.UserId,
		Action:      l.Action,
		Reason:      l.Reason,
		Metadata:    metadata,
		PerformedBy: l.PerformedBy,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *RetentionLogMapper) ToEntities(logs []*model.RetentionLog) []*entity.RetentionLog {
	result := make([]*entity.RetentionLog, 0, len(logs))
	for _, l := range logs {
		result = append(result, m.ToEntity(l))
	}
	return result
}
