package mapper

import (
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/model"
)

type LoanApplicationMapper struct{}

func NewLoanApplicationMapper() *LoanApplicationMapper {
	return &LoanApplicationMapper{}
}

func (m *LoanApplicationMapper) ToEntity(l *model.LoanApplication) *entity.LoanApplication {
	if l == nil {
		return nil
	}
	return &entity.LoanApplication{
		Id:              l.Id,
		CustomerId:      l.CustomerId,
		Amount:          l.Amount,
		Purpose:         l.Purpose,
		ApplicationDate: l.ApplicationDate,
		Status:          entity.LoanStatus(l.Status),
	}
}

func (m *LoanApplicationMapper) ToModel(l *entity.LoanApplication) *model.LoanApplication {
	if l == nil {
		return nil
	}
	return &model.LoanApplication{
		Id:              l.Id,
		CustomerId:      l.CustomerId,
		Amount:          l.Amount,
		Purpose:         l.Purpose,
		ApplicationDate: l.ApplicationDate,
		Status:          string(l.Status),
	}
}

func (m *LoanApplicationMapper) ToEntities(apps []*model.LoanApplication) []*entity.LoanApplication {
	result := make([]*entity.LoanApplication, 0, len(apps))
	for _, l := range apps {
		result = append(result, m.ToEntity(l))
	}
	return result
}
