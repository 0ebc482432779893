package implementation

import (
	"context"
	"errors"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/mapper"
	"loan-agent-be/internal/model"
	"loan-agent-be/internal/repository/contract"
	"loan-agent-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GovernmentIDRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GovernmentIDMapper
}

func NewGovernmentIDRepository(db *gorm.DB) contract.GovernmentIDRepository {
	return &GovernmentIDRepositoryImpl{
		db:     db,
		mapper: mapper.NewGovernmentIDMapper(),
	}
}

func (r *GovernmentIDRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GovernmentIDRepositoryImpl) CreateIfAbsent(ctx context.Context, id *entity.GovernmentID) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GovernmentID{}).
		Where("customer_id = ?", id.CustomerId).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	m := r.mapper.ToModel(id)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*id = *r.mapper.ToEntity(m)
	return nil
}

func (r *GovernmentIDRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GovernmentID, error) {
	var m model.GovernmentID
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}
