package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-borrow-client/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	require.NoError(t, err)

	return &Manager{
		sessions: make(map[string]*Session),
		db:       db,
	}
}

// unsignedJWT buduje token z podanym terminem ważności; podpis jest
// nieistotny, bo klient czyta claimy bez weryfikacji
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]interface{}{
		"sub": "1",
		"exp": exp.Unix(),
	})
	require.NoError(t, err)

	return fmt.Sprintf("%s.%s.sig", header, base64.RawURLEncoding.EncodeToString(payload))
}

func TestCreateSession(t *testing.T) {
	m := newTestManager(t)
	user := models.User{ID: 7, Name: "Jan Kowalski", Email: "jan@example.com", Role: models.RoleUser}

	sess, err := m.CreateSession("some-opaque-token", user)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "some-opaque-token", sess.Token)
	assert.Equal(t, user.Email, sess.User.Email)
	assert.WithinDuration(t, time.Now().Add(sessionDuration), sess.ExpiresAt, 5*time.Second)

	got, ok := m.GetSession(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.Token, got.Token)
}

func TestCreateSessionRequiresToken(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateSession("", models.User{ID: 1})
	assert.Error(t, err)
}

func TestSessionExpiryCappedByToken(t *testing.T) {
	m := newTestManager(t)

	// Token wygasa za godzinę, więc sesja nie może żyć pełnych 24h
	tokenExp := time.Now().Add(1 * time.Hour)
	token := unsignedJWT(t, tokenExp)

	sess, err := m.CreateSession(token, models.User{ID: 1})
	require.NoError(t, err)

	assert.WithinDuration(t, tokenExp, sess.ExpiresAt, 5*time.Second)
}

func TestExpiredSessionNotReturned(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.CreateSession("token", models.User{ID: 1})
	require.NoError(t, err)

	sess.ExpiresAt = time.Now().Add(-1 * time.Minute)

	_, ok := m.GetSession(sess.ID)
	assert.False(t, ok)
}

func TestDeleteSession(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.CreateSession("token", models.User{ID: 1})
	require.NoError(t, err)

	m.DeleteSession(sess.ID)

	_, ok := m.GetSession(sess.ID)
	assert.False(t, ok)
}

func TestSessionsSurviveRestart(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.CreateSession("token", models.User{ID: 1, Email: "jan@example.com"})
	require.NoError(t, err)

	// Nowy manager na tej samej bazie symuluje restart procesu
	restarted := &Manager{
		sessions: make(map[string]*Session),
		db:       m.db,
	}
	require.NoError(t, restarted.loadFromDB())

	got, ok := restarted.GetSession(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "jan@example.com", got.User.Email)
}

func TestUpdateSession(t *testing.T) {
	m := newTestManager(t)

	sess, err := m.CreateSession("token", models.User{ID: 1, Name: "Jan"})
	require.NoError(t, err)

	sess.User.Name = "Jan Nowak"
	require.NoError(t, m.UpdateSession(sess))

	got, ok := m.GetSession(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "Jan Nowak", got.User.Name)
}
