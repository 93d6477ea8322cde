package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yfdecor/storefront/internal/gateway"
	"github.com/yfdecor/storefront/internal/models"
	"github.com/yfdecor/storefront/internal/session"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*session.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return session.NewStore(db), db
}

func newTestGateway(t *testing.T, baseURL string, store *session.Store) *gateway.Client {
	t.Helper()
	client, err := gateway.NewClient(gateway.Config{BaseURL: baseURL, APIPrefix: "/api"}, store)
	if err != nil {
		t.Fatalf("new gateway failed: %v", err)
	}
	return client
}

func TestSignInEstablishesSessionAndNotifies(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"jwt":"tok-1","user":{"id":7,"email":"a@b.com","name":"A","role":"customer"}}`))
		case "/api/profile":
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"id":7,"email":"a@b.com","name":"A","role":"customer"}`))
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store, _ := newTestStore(t)
	gw := newTestGateway(t, server.URL, store)
	ctl := NewController(gw, store)

	var notified *models.SessionUser
	ctl.Subscribe(func(user *models.SessionUser) { notified = user })

	user, err := ctl.SignIn(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !ctl.IsAuthenticated() {
		t.Fatalf("expected authenticated state")
	}
	if notified == nil || notified.ID != 7 {
		t.Fatalf("observer not notified: %+v", notified)
	}
	if store.Token() != "tok-1" {
		t.Fatalf("token not persisted: %q", store.Token())
	}

	// 登录后网关请求应自动携带令牌
	if _, err := gw.Profile(context.Background()); err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestSignInFailureStaysAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer server.Close()

	store, _ := newTestStore(t)
	ctl := NewController(newTestGateway(t, server.URL, store), store)

	_, err := ctl.SignIn(context.Background(), "a@b.com", "wrong")
	var backendErr *gateway.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backendErr.Message != "Invalid credentials" {
		t.Fatalf("backend message not preserved: %q", backendErr.Message)
	}
	if ctl.IsAuthenticated() {
		t.Fatalf("failed sign-in must stay anonymous")
	}
	if store.Token() != "" {
		t.Fatalf("failed sign-in must not persist a token")
	}
}

func TestSignInValidatesCredentials(t *testing.T) {
	store, _ := newTestStore(t)
	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)

	if _, err := ctl.SignIn(context.Background(), "", "secret"); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
	if _, err := ctl.SignIn(context.Background(), "a@b.com", ""); !errors.Is(err, ErrCredentialsRequired) {
		t.Fatalf("expected ErrCredentialsRequired, got %v", err)
	}
	if _, err := ctl.SignUp(context.Background(), "", "a@b.com", "secret"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestRehydrateRestoresSession(t *testing.T) {
	store, _ := newTestStore(t)
	user := &models.SessionUser{ID: 9, Email: "a@b.com", Name: "A", Role: models.RoleCustomer}
	if err := store.SaveSession("tok-9", user); err != nil {
		t.Fatalf("save session failed: %v", err)
	}

	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)
	current := ctl.CurrentUser()
	if current == nil || current.ID != 9 {
		t.Fatalf("expected rehydrated user, got %+v", current)
	}
}

func TestRehydrateCorruptRecordFailsClosed(t *testing.T) {
	store, db := newTestStore(t)
	if err := db.Save(&models.SessionEntry{Key: session.KeyUser, Value: "{broken"}).Error; err != nil {
		t.Fatalf("seed corrupt entry failed: %v", err)
	}
	if err := db.Save(&models.SessionEntry{Key: session.KeyToken, Value: "tok"}).Error; err != nil {
		t.Fatalf("seed token entry failed: %v", err)
	}

	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)
	if ctl.IsAuthenticated() {
		t.Fatalf("corrupt session must rehydrate as anonymous")
	}

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("corrupt session must be cleared, %d entries remain", count)
	}
}

func TestRehydrateWithoutTokenClearsSession(t *testing.T) {
	store, db := newTestStore(t)
	if err := db.Save(&models.SessionEntry{Key: session.KeyUser, Value: `{"id":3,"email":"a@b.com"}`}).Error; err != nil {
		t.Fatalf("seed user entry failed: %v", err)
	}

	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)
	if ctl.IsAuthenticated() {
		t.Fatalf("user without token must rehydrate as anonymous")
	}

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("half session must be cleared, %d entries remain", count)
	}
}

func TestRehydrateWithoutUserClearsOrphanToken(t *testing.T) {
	store, db := newTestStore(t)
	if err := db.Save(&models.SessionEntry{Key: session.KeyToken, Value: "tok-orphan"}).Error; err != nil {
		t.Fatalf("seed token entry failed: %v", err)
	}

	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)
	if ctl.IsAuthenticated() {
		t.Fatalf("token without user must rehydrate as anonymous")
	}
	// 孤儿令牌必须被清除，否则匿名态仍会携带 bearer 头
	if store.Token() != "" {
		t.Fatalf("orphan token must be cleared, got %q", store.Token())
	}

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("half session must be cleared, %d entries remain", count)
	}
}

func TestSignOutClearsEverything(t *testing.T) {
	store, db := newTestStore(t)
	if err := store.SaveSession("tok", &models.SessionUser{ID: 5, Email: "a@b.com"}); err != nil {
		t.Fatalf("save session failed: %v", err)
	}
	ctl := NewController(newTestGateway(t, "http://localhost:1", store), store)

	var notified bool
	var observed *models.SessionUser
	ctl.Subscribe(func(user *models.SessionUser) {
		notified = true
		observed = user
	})

	ctl.SignOut()
	if ctl.IsAuthenticated() {
		t.Fatalf("expected anonymous after sign-out")
	}
	if !notified || observed != nil {
		t.Fatalf("observer should receive nil on sign-out")
	}

	var count int64
	if err := db.Model(&models.SessionEntry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected session cleared, %d entries remain", count)
	}
}
