package software

import (
	"errors"
	"fmt"

	"github.com/fisker/itops-backend/internal/model"
	"github.com/fisker/itops-backend/internal/repository"
	"github.com/fisker/itops-backend/pkg/crypto"
	"github.com/google/uuid"
)

// LicenseService 软件许可证服务
// 许可证密钥以密文落库，仅在显式请求时解密返回
type LicenseService struct {
	repo   *repository.LicenseRepository
	crypto *crypto.Crypto
}

// NewLicenseService 创建许可证服务
func NewLicenseService(repo *repository.LicenseRepository, c *crypto.Crypto) *LicenseService {
	return &LicenseService{
		repo:   repo,
		crypto: c,
	}
}

// CreateLicense 创建许可证，密钥加密后存储
func (s *LicenseService) CreateLicense(license *model.SoftwareLicense, plainKey string) error {
	if license.ID == "" {
		license.ID = uuid.New().String()
	}

	if plainKey != "" {
		encrypted, err := s.crypto.Encrypt(plainKey)
		if err != nil {
			return fmt.Errorf("加密许可证密钥失败: %w", err)
		}
		license.LicenseKey = encrypted
	}

	return s.repo.Create(license)
}

// GetLicense 查询单条许可证（不含密钥明文）
func (s *LicenseService) GetLicense(id string) (*model.SoftwareLicense, error) {
	return s.repo.FindByID(id)
}

// RevealLicenseKey 解密返回许可证密钥明文
func (s *LicenseService) RevealLicenseKey(id string) (string, error) {
	license, err := s.repo.FindByID(id)
	if err != nil {
		return "", err
	}
	if license.LicenseKey == "" {
		return "", errors.New("该许可证未存储密钥")
	}
	return s.crypto.Decrypt(license.LicenseKey)
}

// ListLicenses 分页查询许可证
func (s *LicenseService) ListLicenses(page, pageSize int, licenseType, status, keyword string) ([]model.SoftwareLicense, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.FindAll(page, pageSize, licenseType, status, keyword)
}

// UpdateLicense 更新许可证，plainKey非空时重新加密替换密钥
func (s *LicenseService) UpdateLicense(license *model.SoftwareLicense, plainKey string) error {
	if plainKey != "" {
		encrypted, err := s.crypto.Encrypt(plainKey)
		if err != nil {
			return fmt.Errorf("加密许可证密钥失败: %w", err)
		}
		license.LicenseKey = encrypted
	}
	return s.repo.Update(license)
}

// DeleteLicense 删除许可证
func (s *LicenseService) DeleteLicense(id string) error {
	return s.repo.Delete(id)
}

// AssignSeat 为员工分配一个席位
func (s *LicenseService) AssignSeat(id, employee string) error {
	license, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	for _, assignee := range license.Assignees {
		if assignee == employee {
			return errors.New("该员工已分配此许可证")
		}
	}
	if license.SeatsUsed >= license.Seats {
		return errors.New("许可证席位已满")
	}

	license.Assignees = append(license.Assignees, employee)
	license.SeatsUsed = len(license.Assignees)
	return s.repo.Update(license)
}

// RevokeSeat 回收员工席位
func (s *LicenseService) RevokeSeat(id, employee string) error {
	license, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	assignees := make(model.StringArray, 0, len(license.Assignees))
	found := false
	for _, assignee := range license.Assignees {
		if assignee == employee {
			found = true
			continue
		}
		assignees = append(assignees, assignee)
	}
	if !found {
		return errors.New("该员工未分配此许可证")
	}

	license.Assignees = assignees
	license.SeatsUsed = len(assignees)
	return s.repo.Update(license)
}
