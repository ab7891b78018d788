package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/model"
)

var (
	// ErrUnknownColumn is returned when a write names a column outside the
	// editable whitelist. Descriptive columns are owned upstream.
	ErrUnknownColumn = errors.New("column is not editable")
	// ErrRecordGone is returned when an update matches no row.
	ErrRecordGone = errors.New("record no longer exists")
	// ErrSameDate rejects a copy whose source and destination dates are equal.
	ErrSameDate = errors.New("source and destination dates must differ")
	// ErrNoSourceData is the user-facing condition for a copy whose filtered
	// source set is empty.
	ErrNoSourceData = errors.New("no cleaning instructions found for the source date")
)

// Store defines the persistence gateway for the production plan.
type Store interface {
	DB() *gorm.DB
	FetchByDate(ctx context.Context, date string) ([]model.PlanRecord, error)
	UpdateField(ctx context.Context, id int64, column string, value any) error
	ReadField(ctx context.Context, id int64, column string) (any, bool)
	CopyColumnBetweenDates(ctx context.Context, column, sourceDate, destDate string) (int, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

// FetchByDate returns all records for one acquisition date in store-native
// order. A date with no records yields an empty slice, not an error.
func (s *gormStore) FetchByDate(ctx context.Context, date string) ([]model.PlanRecord, error) {
	var records []model.PlanRecord
	if err := s.db.WithContext(ctx).
		Where("acquisition_date = ?", date).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch records for %s: %w", date, err)
	}
	return records, nil
}

// UpdateField updates exactly one column of exactly one row, matched by id,
// as a single immediately committed statement. On failure the row is left
// untouched; there is no retry.
func (s *gormStore) UpdateField(ctx context.Context, id int64, column string, value any) error {
	if !model.Editable(column) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	res := s.db.WithContext(ctx).
		Model(&model.PlanRecord{}).
		Where("id = ?", id).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("failed to update record %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record %d: %w", id, ErrRecordGone)
	}
	return nil
}

// ReadField is a best-effort point read of one column's current stored
// value, used to capture the "old value" before a write. It reports false
// when the row is gone or the store is unreachable.
func (s *gormStore) ReadField(ctx context.Context, id int64, column string) (any, bool) {
	var probe model.PlanRecord
	if _, known := probe.Field(column); !known {
		return nil, false
	}
	var rec model.PlanRecord
	if err := s.db.WithContext(ctx).
		Select(column).
		Where("id = ?", id).
		Take(&rec).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("read of %s for record %d failed: %v", column, id, err)
		}
		return nil, false
	}
	v, _ := rec.Field(column)
	return v, true
}

// CopyColumnBetweenDates copies one column's values from the source date's
// rows to the destination date's rows, matched by machine number, inside a
// single transaction. Source rows with an empty (or sentinel "0") value are
// skipped; destination rows with no source counterpart are left untouched.
func (s *gormStore) CopyColumnBetweenDates(ctx context.Context, column, sourceDate, destDate string) (int, error) {
	if !model.Editable(column) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if sourceDate == destDate {
		return 0, ErrSameDate
	}

	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source []model.PlanRecord
		if err := tx.Where("acquisition_date = ?", sourceDate).Find(&source).Error; err != nil {
			return fmt.Errorf("failed to fetch source rows for %s: %w", sourceDate, err)
		}

		values := make(map[string]any, len(source))
		for i := range source {
			v, _ := source[i].Field(column)
			if s, ok := v.(string); ok && (s == "" || s == "0") {
				continue
			}
			values[source[i].MachineNo] = v
		}
		if len(values) == 0 {
			return ErrNoSourceData
		}

		var dest []model.PlanRecord
		if err := tx.Where("acquisition_date = ?", destDate).Find(&dest).Error; err != nil {
			return fmt.Errorf("failed to fetch destination rows for %s: %w", destDate, err)
		}

		for i := range dest {
			v, ok := values[dest[i].MachineNo]
			if !ok {
				continue
			}
			res := tx.Model(&model.PlanRecord{}).
				Where("id = ?", dest[i].ID).
				Update(column, v)
			if res.Error != nil {
				return fmt.Errorf("failed to copy %s to machine %s: %w", column, dest[i].MachineNo, res.Error)
			}
			updated += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
