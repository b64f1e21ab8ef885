package user

import (
	"context"
	"strings"

	"campus-activity/internal/global/database"
	"campus-activity/internal/global/jwt"
	"campus-activity/internal/global/paginate"
	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/tools"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	tokens *jwt.Manager
}

func NewService(db *gorm.DB, tokens *jwt.Manager) *Service {
	return &Service{db: db, tokens: tokens}
}

type SignUpReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name" binding:"required,max=50"`
	StudentID string `json:"student_id" binding:"max=20"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp 创建学生账号，邮箱唯一
func (s *Service) SignUp(ctx context.Context, req SignUpReq) (*model.User, error) {
	if err := tools.ValidatePasswordStrength(req.Password); err != nil {
		return nil, response.ErrWeakPassword.WithTips(err.Error())
	}
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	if count > 0 {
		return nil, response.ErrAlreadyExists.WithTips("邮箱已注册")
	}

	hashed, err := tools.PasswordEncrypt(req.Password)
	if err != nil {
		return nil, response.ErrWeakPassword.WithOrigin(err)
	}
	user := model.User{
		Email:     email,
		Password:  hashed,
		Name:      strings.TrimSpace(req.Name),
		Role:      model.RoleStudent,
		Status:    model.UserActive,
		StudentID: req.StudentID,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return nil, response.ErrAlreadyExists.WithTips("邮箱已注册")
		}
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &user, nil
}

// SignIn 校验邮箱密码并签发 token
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil, response.ErrInvalidPassword
	case err != nil:
		return "", nil, response.ErrDatabase.WithOrigin(err)
	}
	if !tools.PasswordCompare(password, user.Password) {
		return "", nil, response.ErrInvalidPassword
	}
	if user.Status != model.UserActive {
		return "", nil, response.ErrUserDisabled
	}

	token, _, err := s.tokens.CreateToken(identityOf(&user))
	if err != nil {
		return "", nil, response.ErrServerInternal.WithOrigin(err)
	}
	return token, &user, nil
}

func (s *Service) SignOut(ctx context.Context, claims *jwt.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return response.ErrServerInternal.WithOrigin(err)
	}
	return nil
}

func identityOf(u *model.User) jwt.Identity {
	return jwt.Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		StudentID: u.StudentID,
	}
}

func (s *Service) Get(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, response.ErrUserNotFound
	case err != nil:
		return nil, response.ErrDatabase.WithOrigin(err)
	}
	return &user, nil
}

type ProfileUpdateReq struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=50"`
	StudentID *string `json:"student_id" binding:"omitempty,max=20"`
	Avatar    *string `json:"avatar" binding:"omitempty,max=255"`
}

func (s *Service) UpdateProfile(ctx context.Context, id uint, req ProfileUpdateReq) (*model.User, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.StudentID != nil {
		updates["student_id"] = *req.StudentID
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !tools.PasswordCompare(oldPassword, user.Password) {
		return response.ErrInvalidPassword.WithTips("原密码错误")
	}
	if err := tools.ValidatePasswordStrength(newPassword); err != nil {
		return response.ErrWeakPassword.WithTips(err.Error())
	}
	hashed, err := tools.PasswordEncrypt(newPassword)
	if err != nil {
		return response.ErrWeakPassword.WithOrigin(err)
	}
	err = s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password", hashed).Error
	if err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	return nil
}

type ListReq struct {
	paginate.Query
	Role    string `form:"role" binding:"omitempty,role"`
	Status  string `form:"status" binding:"omitempty,oneof=active disabled"`
	Keyword string `form:"keyword"`
}

func (s *Service) List(ctx context.Context, req ListReq) (paginate.Result[model.User], error) {
	query := s.db.WithContext(ctx).Model(&model.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Keyword != "" {
		like := "%" + req.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR student_id LIKE ?", like, like, like)
	}
	result, err := paginate.Find[model.User](query, req.Query, paginate.OrderBy("id"))
	if err != nil {
		return result, response.ErrDatabase.WithOrigin(err)
	}
	return result, nil
}

// SetRole 管理员调整角色
func (s *Service) SetRole(ctx context.Context, id uint, role string) (*model.User, error) {
	return s.setField(ctx, id, "role", role)
}

// SetStatus 禁用后该用户的 token 在鉴权时即失效，管理员不能禁用自己
func (s *Service) SetStatus(ctx context.Context, actorID, id uint, status string) (*model.User, error) {
	if actorID == id && status != model.UserActive {
		return nil, response.ErrForbidden.WithTips("不能禁用自己")
	}
	return s.setField(ctx, id, "status", status)
}

func (s *Service) setField(ctx context.Context, id uint, column string, value string) (*model.User, error) {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return nil, response.ErrDatabase.WithOrigin(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, response.ErrUserNotFound
	}
	return s.Get(ctx, id)
}
