package mapper

import (
	"encoding/json"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.HikePayment) *entity.HikePayment {
	if p == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(p.Metadata) > 0 {
		_ = json.Unmarshal(p.Metadata, &metadata)
	}
	return &entity.HikePayment{
		Id:        p.Id,
		UserId:    p.UserId,
		HikeId:    p.HikeId,
		UserEmail: p.UserEmail,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    entity.PaymentStatus(p.Status),
		Metadata:  metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.HikePayment) *model.HikePayment {
	if p == nil {
		return nil
	}
	var metadata datatypes.JSON
	if p.Metadata != nil {
		raw, err := json.Marshal(p.Metadata)
		if err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.HikePayment{
		Id:        p.Id,
		UserId:    p.UserId,
		HikeId:    p.HikeId,
		UserEmail: p.UserEmail,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		Metadata:  metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(payments []*model.HikePayment) []*entity.HikePayment {
	result := make([]*entity.HikePayment, 0, len(payments))
	for _, p := range payments {
		result = append(result, m.ToEntity(p))
	}
	return result
}
