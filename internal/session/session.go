package session

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"library-borrow-client/internal/models"
)

const (
	sessionCookieName = "session_id"
	sessionDuration   = 24 * time.Hour

	bucketName = "sessions"
)

// Session reprezentuje sesję użytkownika. Przechowuje token okaziciela
// wydany przez backend — to backend weryfikuje token przy każdym żądaniu,
// klient go tylko przenosi.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Manager zarządza sesjami użytkowników. Sesje trzymane są w pamięci
// i zapisywane w BoltDB, więc restart procesu nie wylogowuje użytkowników.
type Manager struct {
	sessions map[string]*Session
	db       *bolt.DB
	mu       sync.RWMutex
}

var globalManager *Manager

// Init inicjalizuje globalny manager sesji z bazą pod podaną ścieżką
func Init(dbPath string) error {
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("błąd otwierania bazy sesji: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("błąd tworzenia kubełka sesji: %w", err)
	}

	globalManager = &Manager{
		sessions: make(map[string]*Session),
		db:       db,
	}

	if err := globalManager.loadFromDB(); err != nil {
		log.Printf("Błąd wczytywania sesji z bazy: %v", err)
	}

	// Uruchom czyszczenie wygasłych sesji co godzinę
	go globalManager.cleanupExpiredSessions()

	return nil
}

// GetManager zwraca globalny manager sesji
func GetManager() *Manager {
	return globalManager
}

// Close zamyka bazę sesji
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// loadFromDB wczytuje zapisane sesje przy starcie, pomijając wygasłe
func (m *Manager) loadFromDB() error {
	now := time.Now()

	return m.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var sess Session
			if err := json.Unmarshal(v, &sess); err != nil {
				log.Printf("Błąd parsowania sesji %s: %v", string(k), err)
				return nil
			}
			if now.After(sess.ExpiresAt) {
				return nil
			}
			m.sessions[sess.ID] = &sess
			return nil
		})
	})
}

// CreateSession tworzy nową sesję dla zalogowanego użytkownika.
// Czas życia sesji to 24 godziny, chyba że token backendu wygasa wcześniej.
func (m *Manager) CreateSession(token string, user models.User) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("token nie może być pusty")
	}

	now := time.Now()
	expiresAt := now.Add(sessionDuration)

	// Odczytaj ważność z tokenu bez weryfikacji podpisu — klient nie zna
	// sekretu backendu, a ważność i tak egzekwuje backend.
	if tokenExp, ok := tokenExpiry(token); ok && tokenExp.Before(expiresAt) {
		expiresAt = tokenExp
	}

	session := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	if err := m.persist(session); err != nil {
		log.Printf("Błąd zapisywania sesji: %v", err)
	}

	return session, nil
}

// tokenExpiry wyciąga termin ważności z claimów JWT
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// persist zapisuje sesję w bazie
func (m *Manager) persist(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(session.ID), data)
	})
}

// GetSession pobiera sesję po ID
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	// Sprawdź czy sesja nie wygasła
	if time.Now().After(session.ExpiresAt) {
		return nil, false
	}

	return session, true
}

// UpdateSession zapisuje zmienione dane sesji (np. odświeżony profil)
func (m *Manager) UpdateSession(session *Session) error {
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return m.persist(session)
}

// DeleteSession usuwa sesję
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	err := m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(sessionID))
	})
	if err != nil {
		log.Printf("Błąd usuwania sesji z bazy: %v", err)
	}
}

// cleanupExpiredSessions usuwa wygasłe sesje co godzinę
func (m *Manager) cleanupExpiredSessions() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		var expired []string

		m.mu.Lock()
		for id, session := range m.sessions {
			if now.After(session.ExpiresAt) {
				delete(m.sessions, id)
				expired = append(expired, id)
			}
		}
		m.mu.Unlock()

		for _, id := range expired {
			err := m.db.Update(func(tx *bolt.Tx) error {
				return tx.Bucket([]byte(bucketName)).Delete([]byte(id))
			})
			if err != nil {
				log.Printf("Błąd usuwania wygasłej sesji z bazy: %v", err)
			}
		}
	}
}

// GetSessionFromRequest pobiera sesję na podstawie cookie żądania
func GetSessionFromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, false
	}

	manager := GetManager()
	if manager == nil {
		return nil, false
	}

	return manager.GetSession(cookie.Value)
}

// SetSessionCookie ustawia cookie z ID sesji
func SetSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   false, // w produkcji ustaw na true (HTTPS)
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie usuwa cookie z sesją
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
