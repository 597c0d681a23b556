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

// CreateHistoryItem добавляет запись истории. Записи только добавляются
// и никогда не изменяются; политика вытеснения отсутствует.
func (s *Storage) CreateHistoryItem(ctx context.Context, item models.HistoryItem) error {
	const op = "repository.CreateHistoryItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rawResult, err := json.Marshal(item.RawResult)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO scan_history (id, user_uid, display_date, product_name,
			      score, status, raw_result)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.DB.ExecContext(ctx, query,
		item.ID, item.UserUID, item.Date, item.ProductName,
		item.Score, item.Status, rawResult); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListHistory возвращает записи истории пользователя, новые первыми.
func (s *Storage) ListHistory(ctx context.Context, userUID string, limit, offset int) ([]*models.HistoryItem, error) {
	const op = "repository.ListHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, display_date, product_name, score, status,
			      raw_result, created_at
			  FROM scan_history
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.HistoryItem
	for rows.Next() {
		item, err := scanHistoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetHistoryItem возвращает одну запись истории пользователя по id.
func (s *Storage) GetHistoryItem(ctx context.Context, userUID, itemID string) (*models.HistoryItem, error) {
	const op = "repository.GetHistoryItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, display_date, product_name, score, status,
			      raw_result, created_at
			  FROM scan_history
			  WHERE user_uid = $1 AND id = $2`
	row := s.DB.QueryRowContext(ctx, query, userUID, itemID)

	item, err := scanHistoryItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrHistoryItemNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanHistoryItem(row rowScanner) (*models.HistoryItem, error) {
	item := &models.HistoryItem{}
	var rawResult []byte

	if err := row.Scan(&item.ID, &item.UserUID, &item.Date, &item.ProductName,
		&item.Score, &item.Status, &rawResult, &item.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawResult, &item.RawResult); err != nil {
		return nil, err
	}
	return item, nil
}
