package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NdopnnoabasiJames/Backend-Template/domain"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/mocks"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	activeUser := &domain.User{
		ID:       1,
		Email:    "user@example.com",
		Phone:    "+2348012345678",
		Role:     domain.RoleUser,
		IsActive: true,
	}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*mocks.MockTokenService, *mocks.MockUserRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			setupMocks:     func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Authorization header required",
		},
		{
			name:           "malformed authorization header",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid authorization header format",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			setupMocks: func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired",
			setupMocks: func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, domain.ErrTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Token expired",
		},
		{
			name:       "user no longer exists",
			authHeader: "Bearer valid",
			setupMocks: func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return &domain.TokenClaims{UserID: 42, Role: domain.RoleUser}, nil
				}
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid token",
		},
		{
			name:       "deactivated account with valid token",
			authHeader: "Bearer valid",
			setupMocks: func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return &domain.TokenClaims{UserID: 1, Role: domain.RoleUser}, nil
				}
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					disabled := *activeUser
					disabled.IsActive = false
					return &disabled, nil
				}
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Account is deactivated",
		},
		{
			name:       "valid token and active user",
			authHeader: "Bearer valid",
			setupMocks: func(tokenSvc *mocks.MockTokenService, userRepo *mocks.MockUserRepository) {
				tokenSvc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
					return &domain.TokenClaims{UserID: 1, Role: domain.RoleUser}, nil
				}
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return activeUser, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(tokenSvc, userRepo)

			var gotUserID, gotRole any
			router := gin.New()
			router.Use(AuthMiddleware(tokenSvc, userRepo))
			router.GET("/protected", func(c *gin.Context) {
				gotUserID, _ = c.Get("user_id")
				gotRole, _ = c.Get("user_role")
				c.JSON(http.StatusOK, gin.H{"status": "success"})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Contains(t, response["error"], tt.expectedError)
			}

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "1", gotUserID)
				assert.Equal(t, domain.RoleUser, gotRole)
			}
		})
	}
}
