package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/younglafire/fruitfarm/internal/domain"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) Resolve(ctx context.Context, address string) (*domain.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) Get(ctx context.Context, address string) (*domain.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func TestAccountResolver(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		setupMock      func(*mockAccountService)
		expectedStatus int
		expectedOwner  string
	}{
		{
			name:   "resolves owner",
			header: "0xalice",
			setupMock: func(m *mockAccountService) {
				m.On("Resolve", mock.Anything, "0xalice").Return(&domain.Account{ID: "a1", Address: "0xalice"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedOwner:  "0xalice",
		},
		{
			name:   "invalid address",
			header: "",
			setupMock: func(m *mockAccountService) {
				m.On("Resolve", mock.Anything, "").Return(nil, fmt.Errorf("%w: account address", domain.ErrInvalidInput))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "repository failure",
			header: "0xbob",
			setupMock: func(m *mockAccountService) {
				m.On("Resolve", mock.Anything, "0xbob").Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAccountService{}
			tt.setupMock(svc)

			var gotOwner string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOwner, _ = OwnerFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/seeds", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAccount, tt.header)
			}
			rec := httptest.NewRecorder()

			NewAccountResolver(svc).Resolve(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedOwner, gotOwner)
			svc.AssertExpectations(t)
		})
	}
}

func TestOwnerFromContext_Missing(t *testing.T) {
	_, ok := OwnerFromContext(context.Background())
	assert.False(t, ok)

	_, ok = OwnerFromContext(WithOwner(context.Background(), ""))
	assert.False(t, ok)
}
