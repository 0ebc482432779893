package mapper

import (
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	return &entity.Customer{
		Id:          c.Id,
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreditScore: c.CreditScore,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}
	return &model.Customer{
		Id:          c.Id,
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CreditScore: c.CreditScore,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *CustomerMapper) ToEntities(customers []*model.Customer) []*entity.Customer {
	result := make([]*entity.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, m.ToEntity(c))
	}
	return result
}
