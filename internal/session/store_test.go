package session

import (
	"testing"

	"github.com/yfdecor/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewStore(db), db
}

func TestSaveAndLoadSession(t *testing.T) {
	store, _ := newTestStore(t)

	user := &models.SessionUser{ID: 42, Email: "a@b.com", Name: "A", Role: models.RoleCustomer}
	if err := store.SaveSession("tok-123", user); err != nil {
		t.Fatalf("save session failed: %v", err)
	}

	loaded, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if loaded == nil || loaded.ID != 42 || loaded.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", loaded)
	}
	if store.Token() != "tok-123" {
		t.Fatalf("unexpected token: %q", store.Token())
	}
}

func TestLoadUserMissingIsAnonymous(t *testing.T) {
	store, _ := newTestStore(t)

	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
	if store.Token() != "" {
		t.Fatalf("expected empty token")
	}
}

func TestCorruptUserRecordFailsClosed(t *testing.T) {
	store, db := newTestStore(t)

	// 手工写入损坏记录
	if err := db.Save(&models.SessionEntry{Key: KeyUser, Value: "{not json"}).Error; err != nil {
		t.Fatalf("seed corrupt entry failed: %v", err)
	}
	if err := db.Save(&models.SessionEntry{Key: KeyToken, Value: "tok-123"}).Error; err != nil {
		t.Fatalf("seed token entry failed: %v", err)
	}

	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user should not error: %v", err)
	}
	if user != nil {
		t.Fatalf("corrupt record must yield anonymous, got %+v", user)
	}

	// user 与 jwt 必须一起被清除
	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected session cleared, %d entries remain", count)
	}
	if store.Token() != "" {
		t.Fatalf("expected token cleared")
	}
}

func TestClearRemovesBothKeys(t *testing.T) {
	store, db := newTestStore(t)

	user := &models.SessionUser{ID: 1, Email: "a@b.com", Name: "A"}
	if err := store.SaveSession("tok", user); err != nil {
		t.Fatalf("save session failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 entries, got %d", count)
	}
}

func TestSaveSessionOverwritesPrevious(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.SaveSession("tok-1", &models.SessionUser{ID: 1, Email: "a@b.com"}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}
	if err := store.SaveSession("tok-2", &models.SessionUser{ID: 2, Email: "c@d.com"}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}

	user, err := store.LoadUser()
	if err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user == nil || user.ID != 2 {
		t.Fatalf("expected latest user, got %+v", user)
	}
	if store.Token() != "tok-2" {
		t.Fatalf("expected latest token, got %q", store.Token())
	}
}
