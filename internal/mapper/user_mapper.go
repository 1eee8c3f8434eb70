package mapper

import (
	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                  u.Id,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		FullName:            u.FullName,
		Phone:               u.Phone,
		Role:                entity.UserRole(u.Role),
		Status:              entity.UserStatus(u.Status),
		AvatarURL:           u.AvatarURL,
		EmergencyContact:    u.EmergencyContact,
		MedicalConditions:   u.MedicalConditions,
		DietaryNotes:        u.DietaryNotes,
		LastActiveAt:        u.LastActiveAt,
		WarningSentAt:       u.WarningSentAt,
		ScheduledDeletionAt: u.ScheduledDeletionAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                  u.Id,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		FullName:            u.FullName,
		Phone:               u.Phone,
		Role:                string(u.Role),
		Status:              string(u.Status),
		AvatarURL:           u.AvatarURL,
		EmergencyContact:    u.EmergencyContact,
		MedicalConditions:   u.MedicalConditions,
		DietaryNotes:        u.DietaryNotes,
		LastActiveAt:        u.LastActiveAt,
		WarningSentAt:       u.WarningSentAt,
		ScheduledDeletionAt: u.ScheduledDeletionAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	result := make([]*entity.User, 0, len(users))
	for _, u := range users {
		result = append(result, m.ToEntity(u))
	}
	return result
}
