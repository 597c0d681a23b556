// Package repository содержит методы доступа к таблицам PureScan.
// Списки тегов аллергий и настройки хранятся в JSONB: структура
// принадлежит приложению, базе достаточно атомарной записи.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/storage"
)

// Storage встраивает соединение из пакета storage.
type Storage struct {
	*storage.Storage
}

// New оборачивает подключение к базе методами репозитория.
func New(s *storage.Storage) *Storage {
	return &Storage{Storage: s}
}

// CreateUser сохраняет нового пользователя и возвращает его uid.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "repository.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	allergies, err := json.Marshal(user.Allergies)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newUID string
	query := `INSERT INTO users (email, name, username, telegram_id, photo_url,
			      plan, scans_left, allergies, settings)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Username, user.TelegramID, user.PhotoURL,
		string(user.Plan), user.ScansLeft, allergies, settings).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его uid.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "repository.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, username, telegram_id, photo_url,
			      plan, scans_left, allergies, settings, created_at
			  FROM users
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUser заменяет профиль целиком и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (int, error) {
	const op = "repository.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	allergies, err := json.Marshal(user.Allergies)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET email = $1, name = $2, username = $3, telegram_id = $4,
			      photo_url = $5, plan = $6, scans_left = $7,
			      allergies = $8, settings = $9
			  WHERE uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		user.Email, user.Name, user.Username, user.TelegramID, user.PhotoURL,
		string(user.Plan), user.ScansLeft, allergies, settings, user.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteUser удаляет пользователя вместе с его историей (каскадом).
func (s *Storage) DeleteUser(ctx context.Context, userUID string) error {
	const op = "repository.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePlan устанавливает тарифный план пользователя.
func (s *Storage) UpdatePlan(ctx context.Context, userUID string, plan models.Plan) error {
	const op = "repository.UpdatePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET plan = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, string(plan), userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

// ConsumeScan атомарно списывает одно сканирование с квоты и возвращает
// остаток. Возвращает ErrNoScansLeft, если квота уже исчерпана.
func (s *Storage) ConsumeScan(ctx context.Context, userUID string) (int, error) {
	const op = "repository.ConsumeScan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET scans_left = scans_left - 1
			  WHERE uid = $1 AND scans_left > 0
			  RETURNING scans_left`
	var left int
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&left); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNoScansLeft)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return left, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var email, username, telegramID, photoURL sql.NullString
	var plan string
	var allergies, settings []byte

	if err := row.Scan(&u.UID, &email, &u.Name, &username, &telegramID, &photoURL,
		&plan, &u.ScansLeft, &allergies, &settings, &u.CreatedAt); err != nil {
		return nil, err
	}

	u.Email = email.String
	u.Username = username.String
	u.TelegramID = telegramID.String
	u.PhotoURL = photoURL.String
	u.Plan = models.Plan(plan)

	if len(allergies) > 0 {
		if err := json.Unmarshal(allergies, &u.Allergies); err != nil {
			return nil, err
		}
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &u.Settings); err != nil {
			return nil, err
		}
	}
	return u, nil
}
