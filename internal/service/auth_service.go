package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/peruhpham/Facial-recognition-attendance-management-system/config"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/dto"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/model"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/internal/repository"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/jwt"
	"github.com/peruhpham/Facial-recognition-attendance-management-system/pkg/redis"
)

// ── Lỗi nghiệp vụ xác thực ──

var (
	ErrInvalidCredentials = errors.New("email hoặc mật khẩu không đúng")
	ErrEmailTaken         = errors.New("email đã được sử dụng")
	ErrUserNotFound       = errors.New("không tìm thấy người dùng")
	ErrInvalidRefresh     = errors.New("refresh token không hợp lệ")
)

// AuthService nghiệp vụ xác thực và quản lý người dùng
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService tạo AuthService
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	// 1. Email không được trùng
	existing, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("truy vấn người dùng thất bại", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// 2. Băm mật khẩu
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("băm mật khẩu thất bại", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		StudentCode:  req.StudentCode,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("tạo người dùng thất bại", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Không phân biệt "sai email" và "sai mật khẩu" trong phản hồi
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("truy vấn người dùng thất bại", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// Refresh token đã logout thì từ chối
	blacklisted, err := s.rdb.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("kiểm tra blacklist thất bại", zap.Error(err))
		return nil, err
	}
	if blacklisted {
		return nil, ErrInvalidRefresh
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("truy vấn người dùng thất bại", zap.Error(err))
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		// Token hết hạn thì logout coi như xong
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil
		}
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("đưa token vào blacklist thất bại", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("truy vấn người dùng thất bại", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context, req *dto.ListUsersRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, req.Role, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("truy vấn danh sách người dùng thất bại", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("phát hành access token thất bại", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("phát hành refresh token thất bại", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwtMgr.AccessTokenTTL(),
		User:         toUserResponse(user),
	}, nil
}

// toUserResponse chuyển model.User sang DTO trả về
func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:      u.UserID,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		StudentCode: u.StudentCode,
	}
}

// toUserBrief chuyển model.User sang thông tin rút gọn
func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:          u.UserID,
		FullName:    u.FullName,
		StudentCode: u.StudentCode,
		Email:       u.Email,
	}
}
