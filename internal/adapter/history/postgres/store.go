// Package postgres provides a Postgres-backed price history store.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// priceSampleModel is the persisted form of a domain.PriceSample.
type priceSampleModel struct {
	ID         uint      `gorm:"primaryKey"`
	Origin     string    `gorm:"size:3;index:idx_route,priority:1"`
	DestGroup  string    `gorm:"size:64;index:idx_route,priority:2"`
	Bucket     string    `gorm:"size:16;index:idx_route,priority:3"`
	Price      float64   `gorm:"not null"`
	ObservedAt time.Time `gorm:"index;not null"`
}

// TableName overrides the gorm default.
func (priceSampleModel) TableName() string {
	return "price_samples"
}

// Store implements domain.HistoryStore on top of Postgres.
type Store struct {
	db *gorm.DB
}

// NewStore opens a connection with the given DSN and migrates the schema.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&priceSampleModel{}); err != nil {
		return nil, fmt.Errorf("migrate price_samples: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm connection. Used in tests.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// QuerySamples returns the most recent samples for a route key, newest first,
// capped at window entries.
func (s *Store) QuerySamples(ctx context.Context, key domain.RouteKey, window int) ([]domain.PriceSample, error) {
	var models []priceSampleModel
	err := s.db.WithContext(ctx).
		Where("origin = ? AND dest_group = ? AND bucket = ?", key.Origin, key.Group, key.Bucket).
		Order("observed_at DESC").
		Limit(window).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("query price samples for %s: %w", key.String(), err)
	}

	samples := make([]domain.PriceSample, len(models))
	for i, m := range models {
		samples[i] = domain.PriceSample{
			Key:        domain.RouteKey{Origin: m.Origin, Group: m.DestGroup, Bucket: m.Bucket},
			Price:      m.Price,
			ObservedAt: m.ObservedAt,
		}
	}
	return samples, nil
}

// RecordSample appends one observed price for a route key.
func (s *Store) RecordSample(ctx context.Context, key domain.RouteKey, price float64, observedAt time.Time) error {
	model := priceSampleModel{
		Origin:     key.Origin,
		DestGroup:  key.Group,
		Bucket:     key.Bucket,
		Price:      price,
		ObservedAt: observedAt,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("record price sample for %s: %w", key.String(), err)
	}
	return nil
}

// Ensure Store implements domain.HistoryStore at compile time.
var _ domain.HistoryStore = (*Store)(nil)
