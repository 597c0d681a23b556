package notifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/purescan-ai/purescan-backend/internal/lib/smtp"
	"github.com/purescan-ai/purescan-backend/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_HandleScanCompleted(t *testing.T) {
	eventBody := []byte(`{"user_uid":"uid-1","result_id":"res-1","product_name":"Гранола","score":"8.5","status":"safe","verdict":"Можно употреблять"}`)

	subscribedUser := &models.User{
		UID:      "uid-1",
		Email:    "anna@example.com",
		Name:     "Анна",
		Settings: models.Settings{Notifications: true},
	}

	tests := []struct {
		name          string
		body          []byte
		setupMocks    func(*MockRepository, *MockTransport)
		expectedError bool
		errorMessage  string
	}{
		{
			name: "success - email sent",
			body: eventBody,
			setupMocks: func(r *MockRepository, tr *MockTransport) {
				mockClient := new(MockSMTPClient)
				mockWriter := new(MockSMTPWriter)

				r.On("GetUser", mock.Anything, "uid-1").Return(subscribedUser, nil).Once()
				tr.On("GetSMTPUser").Return("noreply@purescan.ai")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "noreply@purescan.ai").Return(nil).Once()
				mockClient.On("Rcpt", "anna@example.com").Return(nil).Once()
				mockClient.On("Data").Return(mockWriter, nil).Once()
				mockWriter.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
				mockWriter.On("Close").Return(nil).Once()
				mockClient.On("Quit").Return(nil).Once()
			},
			expectedError: false,
		},
		{
			name: "invalid JSON",
			body: []byte(`invalid json`),
			setupMocks: func(_ *MockRepository, _ *MockTransport) {
			},
			expectedError: true,
			errorMessage:  "notifier.HandleScanCompleted",
		},
		{
			name: "repository error",
			body: eventBody,
			setupMocks: func(r *MockRepository, _ *MockTransport) {
				r.On("GetUser", mock.Anything, "uid-1").Return(nil, errors.New("user not found")).Once()
			},
			expectedError: true,
			errorMessage:  "user not found",
		},
		{
			name: "notifications disabled - skipped silently",
			body: eventBody,
			setupMocks: func(r *MockRepository, _ *MockTransport) {
				muted := &models.User{
					UID:      "uid-1",
					Email:    "anna@example.com",
					Settings: models.Settings{Notifications: false},
				}
				r.On("GetUser", mock.Anything, "uid-1").Return(muted, nil).Once()
			},
			expectedError: false,
		},
		{
			name: "no email - skipped silently",
			body: eventBody,
			setupMocks: func(r *MockRepository, _ *MockTransport) {
				anonymous := &models.User{
					UID:      "uid-1",
					Settings: models.Settings{Notifications: true},
				}
				r.On("GetUser", mock.Anything, "uid-1").Return(anonymous, nil).Once()
			},
			expectedError: false,
		},
		{
			name: "SMTP connection error",
			body: eventBody,
			setupMocks: func(r *MockRepository, tr *MockTransport) {
				r.On("GetUser", mock.Anything, "uid-1").Return(subscribedUser, nil).Once()
				tr.On("GetSMTPUser").Return("noreply@purescan.ai")
				tr.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			expectedError: true,
			errorMessage:  "connection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			transport := new(MockTransport)
			service := New(repo, transport, newNoopLogger())

			tt.setupMocks(repo, transport)

			err := service.HandleScanCompleted(tt.body)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			transport.AssertExpectations(t)
		})
	}
}
