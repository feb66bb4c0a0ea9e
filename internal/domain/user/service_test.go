package user

import (
	"context"
	"testing"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// fakeRepo 内存仓储,便于不依赖数据库测试Service
type fakeRepo struct {
	byEmail map[string]*User
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = uint(len(f.byEmail) + 1)
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error { return nil }

func newTestService() (*fakeRepo, Service) {
	repo := &fakeRepo{byEmail: make(map[string]*User)}
	return repo, NewService(repo)
}

func TestRegisterValidation(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"邮箱格式错误", "not-an-email", "passw0rd"},
		{"密码过短", "a@b.com", "p1"},
		{"密码缺少数字", "a@b.com", "passwordonly"},
		{"密码缺少字母", "a@b.com", "12345678"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, c.email, c.password, "三", "张"); err == nil {
				t.Errorf("期望注册失败,实际成功")
			}
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "reader@example.com", "passw0rd", "三", "张")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if u.Password == "passw0rd" {
		t.Fatal("密码不应明文存储")
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("落库失败: %v", err)
	}

	got, err := svc.Authenticate(ctx, "reader@example.com", "passw0rd")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if got.Email != "reader@example.com" {
		t.Errorf("返回用户不匹配: %s", got.Email)
	}

	if _, err := svc.Authenticate(ctx, "reader@example.com", "wrongpw1"); err == nil {
		t.Error("错误密码应登录失败")
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "passw0rd"); err == nil {
		t.Error("不存在的邮箱应登录失败")
	}
}
