package counter

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/connection"

	"gorm.io/gorm"
)

// Counter is a named monotonically increasing sequence.
type Counter struct {
	CounterType string `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"type:bigint;not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

// GetNextValue increments the sequence and returns the new value. Callers
// serialize through a transaction or a writer lock.
func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	db := r.db.WithContext(ctx)

	res := db.Model(&Counter{}).
		Where("counter_type = ?", counterType).
		Updates(map[string]any{
			"last_value": gorm.Expr("last_value + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		c := Counter{CounterType: counterType, LastValue: 1}
		if err := db.Create(&c).Error; err != nil {
			return 0, err
		}
		return c.LastValue, nil
	}

	var c Counter
	if err := db.First(&c, "counter_type = ?", counterType).Error; err != nil {
		return 0, err
	}
	return c.LastValue, nil
}
