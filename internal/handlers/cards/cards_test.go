package cards

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/nbataa/agentmart/internal/domain"
	"github.com/nbataa/agentmart/internal/dto"
	"github.com/nbataa/agentmart/internal/service/cardservice"
	"github.com/nbataa/agentmart/pkg/auth"
)

func NewMock(t *testing.T) (*CardHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func authed(r *http.Request, userID int, role string) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
	ctx = context.WithValue(ctx, auth.RoleKey, role)
	return r.WithContext(ctx)
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Balance(gomock.Any(), 1).Return(int64(3), nil)

	r := httptest.NewRequest(http.MethodGet, "/api/cards/balance", nil)
	r = authed(r, 1, domain.RoleUser)
	w := httptest.NewRecorder()

	handler.GetBalance(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body dto.CardBalanceResponseDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, int64(3), body.Balance)
}

func TestGetHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().History(gomock.Any(), 1).Return([]domain.CardTransaction{
		{ID: 2, Type: domain.TxAdminGift, Amount: 5, CreatedAt: time.Now()},
		{ID: 1, Type: domain.TxInitialGrant, Amount: 1, CreatedAt: time.Now().Add(-time.Hour)},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/cards/history", nil)
	r = authed(r, 1, domain.RoleUser)
	w := httptest.NewRecorder()

	handler.GetHistory(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []dto.CardTransactionResponseDTO
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Len(t, body, 2)
	assert.Equal(t, domain.TxAdminGift, body[0].Type)
}

func TestGiftHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful gift returns the new balance",
			body: `{"recipient_phone":"99112233","amount":2}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Gift(gomock.Any(), domain.Actor{ID: 1, Role: domain.RoleUser}, "99112233", int64(2)).
					Return(&domain.CardTransaction{ID: 10, Amount: -2}, nil)
				service.EXPECT().Balance(gomock.Any(), 1).Return(int64(1), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance maps to 402",
			body: `{"recipient_phone":"99112233","amount":5}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().
					Gift(gomock.Any(), gomock.Any(), "99112233", int64(5)).
					Return(nil, cardservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient card balance",
		},
		{
			name:          "Malformed phone",
			body:          `{"recipient_phone":"12ab","amount":1}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
		},
		{
			name:          "Invalid request body",
			body:          `not json`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := httptest.NewRequest(http.MethodPost, "/api/cards/gift", bytes.NewBufferString(tt.body))
			r = authed(r, 1, domain.RoleUser)
			w := httptest.NewRecorder()

			handler.Gift(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.CardBalanceResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, int64(1), body.Balance)
			}
		})
	}
}
