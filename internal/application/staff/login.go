package staff

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/staff"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LoginUseCase 员工登录用例
// 设计说明：
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis(未配置Redis时跳过)
type LoginUseCase struct {
	staffService staff.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore // 可为nil
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	staffService staff.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		staffService: staffService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求DTO
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应DTO
type LoginResponse struct {
	Staff        StaffInfo `json:"staff"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码（调用领域服务）
	s, err := uc.staffService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(s.ID, s.Email, s.Name)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	// 会话保存失败不影响登录
	if uc.sessionStore != nil {
		sessionData := map[string]interface{}{
			"staff_id": s.ID,
			"email":    s.Email,
			"name":     s.Name,
			"role":     s.Role,
			"login_at": time.Now().Unix(),
		}
		_ = uc.sessionStore.SaveSession(ctx, s.ID, sessionData, 7*24*time.Hour)
	}

	return &LoginResponse{
		Staff: StaffInfo{
			ID:    s.ID,
			Email: s.Email,
			Name:  s.Name,
			Role:  s.Role,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 员工登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore // 可为nil
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
// 删除会话并将Access Token加入黑名单(防止Token在过期前继续使用)
func (uc *LogoutUseCase) Execute(ctx context.Context, staffID uint, accessToken string) error {
	if uc.sessionStore == nil {
		return nil
	}
	if err := uc.sessionStore.DeleteSession(ctx, staffID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}
