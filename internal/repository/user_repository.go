package repository

import (
	"time"

	"github.com/fisker/itops-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindUserByEmail(email string) (*model.User, error) {
	var users []model.User
	result := r.db.Where("email = ?", email).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &users[0], nil
}

func (r *UserRepository) FindUserByID(id string) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateUser(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateUserLastLogin(userID string, loginTime time.Time, loginIP string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_time": loginTime,
			"last_login_ip":   loginIP,
		}).Error
}

// FindAllUsersWithPagination 分页获取所有用户
func (r *UserRepository) FindAllUsersWithPagination(page, pageSize int, keyword string) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.db.Model(&model.User{})

	// 关键字搜索
	if keyword != "" {
		query = query.Where("email LIKE ? OR name LIKE ? OR department LIKE ?",
			"%"+keyword+"%", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error

	return users, total, err
}

// DeleteUser 删除用户（软删除，设置status为inactive）
func (r *UserRepository) DeleteUser(userID string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("status", model.UserStatusInactive).Error
}

// UpdateUserRole 更新用户角色
func (r *UserRepository) UpdateUserRole(userID, role string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

// UpdateUserStatus 更新用户状态
func (r *UserRepository) UpdateUserStatus(userID, status string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}

// CountUsers 统计用户总数
func (r *UserRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) GetDB() *gorm.DB {
	return r.db
}
