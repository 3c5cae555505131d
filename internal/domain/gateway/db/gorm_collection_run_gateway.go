package db

import (
	"errors"

	"gorm.io/gorm"

	"lindas-hydro/internal/domain/entity"
)

type GormCollectionRunGateway struct {
	DB *gorm.DB
}

var _ CollectionRunGateway = (*GormCollectionRunGateway)(nil)

func NewGormCollectionRunGateway(db *gorm.DB) *GormCollectionRunGateway {
	return &GormCollectionRunGateway{DB: db}
}

func (gateway *GormCollectionRunGateway) Migrate() error {
	return gateway.DB.AutoMigrate(&entity.CollectionRun{})
}

func (gateway *GormCollectionRunGateway) Save(run entity.CollectionRun) error {
	return gateway.DB.Save(&run).Error
}

func (gateway *GormCollectionRunGateway) Last() (*entity.CollectionRun, error) {
	var run entity.CollectionRun
	err := gateway.DB.Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
