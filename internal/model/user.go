package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 用户角色常量
const (
	RoleHead    = "head"    // 部门负责人
	RoleManager = "manager" // 部门经理
	RoleNormal  = "normal"  // 普通用户
	RoleView    = "view"    // 只读用户
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// StringArray 字符串数组类型，用于存储 JSON 数组
type StringArray []string

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return nil
}

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// User 平台用户
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password    string         `json:"-" gorm:"type:varchar(255);not null"` // 不在JSON中暴露
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Role        string         `json:"role" gorm:"type:varchar(20);default:'normal';index"` // head, manager, normal, view
	Department  string         `json:"department" gorm:"type:varchar(100);index"`
	Position    string         `json:"position" gorm:"type:varchar(100)"`
	Status      string         `json:"status" gorm:"type:varchar(20);default:'active';index"`
	Permissions StringArray    `json:"permissions" gorm:"type:json"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:json"`

	LastLoginTime *time.Time `json:"lastLoginTime,omitempty" gorm:"type:timestamp"`
	LastLoginIP   string     `json:"lastLoginIp,omitempty" gorm:"type:varchar(45)"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Name       string `json:"name" binding:"required"`
	Department string `json:"department"`
	Position   string `json:"position"`
}
