package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	empMocks "lodge/internal/domains/employee/mocks"
	"lodge/internal/domains/employee/model"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/password"
)

func newService(ctrl *gomock.Controller) (service.Auth, *empMocks.MockEmployee, *jwtMocks.MockJWT) {
	mockEmpRepo := empMocks.NewMockEmployee(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockEmpRepo, cfg, mocks.NewOtel(), mockJWT)

	return svc, mockEmpRepo, mockJWT
}

func hashedEmployee(t *testing.T, plain string) model.Employee {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return model.Employee{
		ID:           "emp-id",
		Email:        "sam@example.com",
		Role:         constant.RoleReceptionist,
		PasswordHash: hash,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEmpRepo, mockJWT := newService(ctrl)

	employee := hashedEmployee(t, "correct-password")

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "sam@example.com", Password: "correct-password"},
			setupMock: func() {
				mockEmpRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(employee, nil)

				mockJWT.EXPECT().
					GenerateTokenPair("emp-id", "sam@example.com", constant.RoleReceptionist).
					Return(&jwt.TokenPair{
						AccessToken:  "access",
						RefreshToken: "refresh",
						TokenType:    "Bearer",
						ExpiresIn:    900,
					}, nil)
			},
			wantErr: false,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"},
			setupMock: func() {
				mockEmpRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Employee{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "sam@example.com", Password: "wrong-password"},
			setupMock: func() {
				mockEmpRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(employee, nil)
			},
			wantErr: true,
		},
		{
			name: "token generation failure",
			req:  dto.LoginRequest{Email: "sam@example.com", Password: "correct-password"},
			setupMock: func() {
				mockEmpRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(employee, nil)

				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "refresh", res.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login_BadCredentialsAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEmpRepo, _ := newService(ctrl)

	employee := hashedEmployee(t, "correct-password")

	mockEmpRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Employee{}, nil)

	_, unknownEmailErr := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	mockEmpRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(employee, nil)

	_, wrongPasswordErr := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockJWT := newService(ctrl)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("bad-refresh").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-refresh"})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEmpRepo, _ := newService(ctrl)

	employee := hashedEmployee(t, "current-password")

	t.Run("successful change rehashes the password", func(t *testing.T) {
		mockEmpRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(employee, nil)

		mockEmpRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hash, ok := fields["password_hash"].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hash))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "current-password",
			NewPassword:     "new-password",
		}, "emp-id")

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockEmpRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(employee, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "new-password",
		}, "emp-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("employee not found", func(t *testing.T) {
		mockEmpRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Employee{}, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "current-password",
			NewPassword:     "new-password",
		}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
