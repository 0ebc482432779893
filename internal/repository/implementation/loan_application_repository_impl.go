package implementation

import (
	"context"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/mapper"
	"loan-agent-be/internal/model"
	"loan-agent-be/internal/repository/contract"
	"loan-agent-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LoanApplicationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LoanApplicationMapper
}

func NewLoanApplicationRepository(db *gorm.DB) contract.LoanApplicationRepository {
	return &LoanApplicationRepositoryImpl{
		db:     db,
		mapper: mapper.NewLoanApplicationMapper(),
	}
}

func (r *LoanApplicationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LoanApplicationRepositoryImpl) Create(ctx context.Context, app *entity.LoanApplication) error {
	m := r.mapper.ToModel(app)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*app = *r.mapper.ToEntity(m)
	return nil
}

func (r *LoanApplicationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanApplication, error) {
	var models []*model.LoanApplication
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

// UpdateStatus guards the Pending-only transition in the WHERE clause, so a
// concurrent or repeated decision cannot overwrite a settled application.
func (r *LoanApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status entity.LoanStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.LoanApplication{}).
		Where("id = ? AND status = ?", id, string(entity.LoanStatusPending)).
		Update("status", string(status))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
