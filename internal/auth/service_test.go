package auth

import (
	"testing"
	"time"

	"fluidbook/pkg/models"
)

type memorySessionStore struct {
	sessions map[string]models.AdminSession
}

func newMemoryStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]models.AdminSession)}
}

func (m *memorySessionStore) Put(session *models.AdminSession) error {
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionStore) Lookup(id string) (*models.AdminSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (m *memorySessionStore) Expire(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memorySessionStore) DeleteExpired(now time.Time) (int64, error) {
	var removed int64
	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func newTestService(store SessionStore) *Service {
	return &Service{store: store, password: "admin123"}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(newMemoryStore())
	if _, err := svc.Login("wrong"); err != ErrInvalidPassword {
		t.Errorf("Login error = %v, want ErrInvalidPassword", err)
	}
}

func TestLoginCreatesValidSession(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	session, err := svc.Login("admin123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.ID == "" {
		t.Fatal("session id is empty")
	}
	if _, err := svc.Validate(session.ID); err != nil {
		t.Errorf("Validate returned error: %v", err)
	}
}

func TestValidateRejectsExpiredSessionAndRemovesIt(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	store.Put(&models.AdminSession{
		ID:        "stale",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	})

	if _, err := svc.Validate("stale"); err != ErrSessionNotFound {
		t.Errorf("Validate error = %v, want ErrSessionNotFound", err)
	}
	if _, ok := store.sessions["stale"]; ok {
		t.Error("expired session should be removed on lookup")
	}
}

func TestValidateRejectsEmptyAndUnknownIDs(t *testing.T) {
	svc := newTestService(newMemoryStore())
	for _, id := range []string{"", "unknown"} {
		if _, err := svc.Validate(id); err != ErrSessionNotFound {
			t.Errorf("Validate(%q) error = %v, want ErrSessionNotFound", id, err)
		}
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	session, err := svc.Login("admin123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	svc.Logout(session.ID)
	if _, err := svc.Validate(session.ID); err != ErrSessionNotFound {
		t.Errorf("Validate after logout error = %v, want ErrSessionNotFound", err)
	}
}

func TestDeleteExpiredSweepsOnlyStaleSessions(t *testing.T) {
	store := newMemoryStore()
	store.Put(&models.AdminSession{ID: "live", ExpiresAt: time.Now().Add(time.Hour)})
	store.Put(&models.AdminSession{ID: "stale", ExpiresAt: time.Now().Add(-time.Hour)})

	removed, err := store.DeleteExpired(time.Now())
	if err != nil {
		t.Fatalf("DeleteExpired returned error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := store.sessions["live"]; !ok {
		t.Error("live session should survive the sweep")
	}
}
