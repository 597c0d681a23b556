package run

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/purescan-ai/purescan-backend/internal/http-server/middlewarectx"
	"github.com/purescan-ai/purescan-backend/internal/models"
	"github.com/purescan-ai/purescan-backend/internal/services/scan"
	"github.com/purescan-ai/purescan-backend/internal/view"
)

type ScannerMock struct {
	mock.Mock
}

func (m *ScannerMock) Scan(ctx context.Context, userUID string, input models.ScanInput) (*models.ScanResult, error) {
	args := m.Called(ctx, userUID, input)
	result, _ := args.Get(0).(*models.ScanResult)
	return result, args.Error(1)
}

type SessionMock struct {
	mock.Mock
}

func (m *SessionMock) Apply(ctx context.Context, userUID string, event view.Event) view.State {
	args := m.Called(ctx, userUID, event)
	return args.Get(0).(view.State)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRunHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockResult     *models.ScanResult
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:        "successful scan",
			requestBody: Request{Ingredients: "сахар, вода"},
			mockResult: &models.ScanResult{
				ID:     "res-1",
				Score:  "6.2",
				Status: models.StatusWarning,
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "empty input",
			requestBody:    Request{},
			mockErr:        fmt.Errorf("scan.Scan: %w", scan.ErrEmptyInput),
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "provide an image or ingredients text",
		},
		{
			name:           "quota exceeded",
			requestBody:    Request{Ingredients: "вода"},
			mockErr:        fmt.Errorf("scan.Scan: %w", scan.ErrQuotaExceeded),
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantError:      msgQuotaExceeded,
		},
		{
			name:           "audit failed",
			requestBody:    Request{Ingredients: "вода"},
			mockErr:        fmt.Errorf("scan.Scan: %w", scan.ErrAuditFailed),
			wantStatusCode: http.StatusBadGateway,
			wantStatus:     "Error",
			wantError:      msgAuditFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scannerMock := new(ScannerMock)
			sessionMock := new(SessionMock)
			handler := New(newNoopLogger(), scannerMock, sessionMock)

			if tt.mockResult != nil || tt.mockErr != nil {
				scannerMock.On("Scan", mock.Anything, "uid-1", mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}
			if tt.mockResult != nil {
				sessionMock.On("Apply", mock.Anything, "uid-1", view.EventScanComplete).
					Return(view.Result).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/scan", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}
			if tt.mockResult != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "RESULT", data["view"])

				result, ok := data["result"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "6.2", result["score"])
				sessionMock.AssertExpectations(t)
			}
			scannerMock.AssertExpectations(t)
		})
	}
}
