package user

import (
	"time"
)

// User 用户实体(聚合根)
// 设计说明:
// 1. 密码以bcrypt哈希存储,实体不暴露明文
// 2. 领域实体不携带GORM tag,映射由infrastructure层的模型完成
// 3. 注册时会同步创建Customer档案(见application层RegisterUseCase)
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName 拼接展示用姓名
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UpdateName 更新姓名(领域行为)
func (u *User) UpdateName(firstName, lastName string) {
	if firstName != "" {
		u.FirstName = firstName
	}
	if lastName != "" {
		u.LastName = lastName
	}
	u.UpdatedAt = time.Now()
}
