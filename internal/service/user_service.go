package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// UserService implements the Connect UserService.
type UserService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
}

// NewUserService creates a UserService. jwtManager may be nil, in which case
// no tokens are issued.
func NewUserService(store storage.Store, jwtManager *auth.JWTManager) *UserService {
	return &UserService{store: store, jwtManager: jwtManager}
}

// InitUser records a client-generated user ID. Calling it again for the same
// ID is harmless and reports IsNew=false.
func (s *UserService) InitUser(ctx context.Context, req *connect.Request[api.InitUserRequest]) (*connect.Response[api.InitUserResponse], error) {
	userID := strings.TrimSpace(req.Msg.UserID)
	slog.Info("InitUser request received", "user_id", userID)

	msg := &api.InitUserRequest{UserID: userID}
	if err := validateRequest(msg); err != nil {
		return nil, err
	}

	user, created, err := s.store.EnsureUser(ctx, userID)
	if err != nil {
		slog.Error("InitUser failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	var token string
	if s.jwtManager != nil {
		token, err = s.jwtManager.Generate(user.ID)
		if err != nil {
			slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	slog.Info("InitUser successful", "user_id", user.ID, "is_new", created)

	return connect.NewResponse(&api.InitUserResponse{
		UserID: user.ID,
		IsNew:  created,
		Token:  token,
	}), nil
}
