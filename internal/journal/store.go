package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mtgate/internal/trade"
)

type Store struct {
	db *gorm.DB
}

// Open creates (or migrates) the journal database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

// OpenDB wraps an existing gorm handle, for tests.
func OpenDB(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db cannot be nil")
	}
	return newStore(db)
}

func newStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DispatchModel{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ trade.Recorder = (*Store)(nil)

// Record persists one dispatch entry.
func (s *Store) Record(ctx context.Context, entry trade.RecordEntry) error {
	model := DispatchModel{
		TraceID:       entry.TraceID,
		Action:        entry.Action,
		Symbol:        entry.Symbol,
		OrderType:     entry.OrderType,
		Volume:        entry.Volume,
		Success:       entry.Outcome.Success,
		Message:       entry.Outcome.Message,
		ReturnCode:    entry.Outcome.ReturnCode,
		ReturnMessage: entry.Outcome.ReturnMessage,
		CreatedAt:     time.Now(),
	}
	if entry.Outcome.Request != nil {
		if buf, err := json.Marshal(entry.Outcome.Request); err == nil {
			model.RequestJSON = buf
		}
	}
	if entry.Outcome.Result != nil {
		if buf, err := json.Marshal(entry.Outcome.Result); err == nil {
			model.ResultJSON = buf
		}
	}
	return s.db.WithContext(ctx).Create(&model).Error
}

// Recent lists the latest dispatches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]DispatchModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []DispatchModel
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BySymbol lists the latest dispatches for one symbol, newest first.
func (s *Store) BySymbol(ctx context.Context, symbol string, limit int) ([]DispatchModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []DispatchModel
	err := s.db.WithContext(ctx).
		Where("symbol = ?", strings.TrimSpace(symbol)).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
