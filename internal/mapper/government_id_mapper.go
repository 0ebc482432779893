package mapper

import (
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/model"
)

type GovernmentIDMapper struct{}

func NewGovernmentIDMapper() *GovernmentIDMapper {
	return &GovernmentIDMapper{}
}

func (m *GovernmentIDMapper) ToEntity(g *model.GovernmentID) *entity.GovernmentID {
	if g == nil {
		return nil
	}
	return &entity.GovernmentID{
		Id:         g.Id,
		CustomerId: g.CustomerId,
		IdType:     g.IdType,
		IdNumber:   g.IdNumber,
		CreatedAt:  g.CreatedAt,
	}
}

func (m *GovernmentIDMapper) ToModel(g *entity.GovernmentID) *model.GovernmentID {
	if g == nil {
		return nil
	}
	return &model.GovernmentID{
		Id:         g.Id,
		CustomerId: g.CustomerId,
		IdType:     g.IdType,
		IdNumber:   g.IdNumber,
		CreatedAt:  g.CreatedAt,
	}
}
