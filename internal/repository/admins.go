package repository

import (
	"encoding/json"
	"errors"

	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-tracker/backend/internal/kvstore"
)

var ErrAdminNotFound = errors.New("管理员不存在")

// 管理员账户关系到登录，读写失败必须返回给调用者
func (r *Repository) loadAdmins() ([]domain.Admin, error) {
	data, err := r.getRaw(KeyAdmins)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []domain.Admin{}, nil
		}
		return nil, err
	}

	var admins []domain.Admin
	if err := json.Unmarshal(data, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *Repository) GetAdmin(username string) (*domain.Admin, error) {
	admins, err := r.loadAdmins()
	if err != nil {
		return nil, err
	}

	for _, a := range admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, ErrAdminNotFound
}

// EnsureAdmin 在同名管理员不存在时创建它并返回 true，已存在时保留原来的密码
func (r *Repository) EnsureAdmin(admin *domain.Admin) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins, err := r.loadAdmins()
	if err != nil {
		return false, err
	}

	for _, a := range admins {
		if a.Username == admin.Username {
			return false, nil
		}
	}

	if err := r.setJSON(KeyAdmins, append(admins, *admin)); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) UpdateAdmin(admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins, err := r.loadAdmins()
	if err != nil {
		return err
	}

	for i := range admins {
		if admins[i].Username == admin.Username {
			admins[i] = *admin
			return r.setJSON(KeyAdmins, admins)
		}
	}
	return ErrAdminNotFound
}
