// Package storage реализует хранилище данных на основе PostgreSQL
// для профилей пользователей и истории сканирований.
package storage

import (
	"context"
	"errors"
	"fmt"

	"database/sql"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища, различимые на уровне сервисов.
var (
	// ErrUserNotFound возвращается, когда пользователь с заданным uid отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoScansLeft возвращается при попытке списать сканирование с нулевой квотой.
	ErrNoScansLeft = errors.New("no scans left")
	// ErrHistoryItemNotFound возвращается, когда запись истории отсутствует.
	ErrHistoryItemNotFound = errors.New("history item not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
