package session

import (
	"encoding/json"
	"errors"

	"github.com/yfdecor/storefront/internal/logger"
	"github.com/yfdecor/storefront/internal/models"

	"gorm.io/gorm"
)

// 会话存储键。user 与 jwt 必须一起写入、一起清除。
const (
	KeyUser  = "user"
	KeyToken = "jwt"
)

// Store 持久会话存储：封装本地键值表，保存令牌与序列化用户记录。
// 认证控制器是 user/jwt 两个键的唯一写入方。
type Store struct {
	db *gorm.DB
}

// NewStore 创建会话存储
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveSession 持久化令牌与用户记录
func (s *Store) SaveSession(token string, user *models.SessionUser) error {
	if user == nil {
		return errors.New("session user is nil")
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.set(KeyToken, token); err != nil {
		return err
	}
	return s.set(KeyUser, string(payload))
}

// LoadUser 读取用户记录。记录损坏时立即清除会话并按未登录处理（fail-closed）。
func (s *Store) LoadUser() (*models.SessionUser, error) {
	raw, found, err := s.get(KeyUser)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var user models.SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warnw("session_user_corrupt", "error", err)
		if clearErr := s.Clear(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return &user, nil
}

// Token 读取当前令牌，缺失时返回空串
func (s *Store) Token() string {
	raw, found, err := s.get(KeyToken)
	if err != nil || !found {
		return ""
	}
	return raw
}

// Clear 清除会话（user 与 jwt 一起删除）。
func (s *Store) Clear() error {
	return s.db.Where("key IN ?", []string{KeyUser, KeyToken}).Delete(&models.SessionEntry{}).Error
}

func (s *Store) set(key, value string) error {
	return s.db.Save(&models.SessionEntry{Key: key, Value: value}).Error
}

func (s *Store) get(key string) (string, bool, error) {
	var entry models.SessionEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}
