package cache

import (
	"sync"
	"time"
)

const (
	// Tagi widoków, które przepływ wypożyczania unieważnia po potwierdzeniu
	TagCart      = "cart"
	TagMyLoans   = "my-loans"
	TagMyReviews = "my-reviews"
	TagCheckout  = "checkout"
	TagProfile   = "profile"

	defaultTTL      = 1 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// entry to jedna zapamiętana odpowiedź widoku
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Manager to pamięć podręczna odpowiedzi backendu per proces.
// Klucz składa się z tagu widoku i identyfikatora sesji, więc unieważnienie
// tagu usuwa widok dla wszystkich sesji naraz.
type Manager struct {
	entries map[string]map[string]entry // tag -> klucz sesji -> wpis
	mu      sync.RWMutex
	ttl     time.Duration
}

var globalManager *Manager

// Init inicjalizuje globalny manager pamięci podręcznej
func Init() {
	globalManager = NewManager(defaultTTL)

	// Uruchom czyszczenie wygasłych wpisów w tle
	go globalManager.cleanupExpired()
}

// GetManager zwraca globalny manager pamięci podręcznej
func GetManager() *Manager {
	if globalManager == nil {
		Init()
	}
	return globalManager
}

// NewManager tworzy manager z podanym czasem życia wpisów
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		entries: make(map[string]map[string]entry),
		ttl:     ttl,
	}
}

// Get pobiera zapamiętaną wartość widoku dla sesji
func (m *Manager) Get(tag, sessionKey string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byTag, ok := m.entries[tag]
	if !ok {
		return nil, false
	}

	e, ok := byTag[sessionKey]
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		return nil, false
	}

	return e.value, true
}

// Set zapamiętuje wartość widoku dla sesji
func (m *Manager) Set(tag, sessionKey string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byTag, ok := m.entries[tag]
	if !ok {
		byTag = make(map[string]entry)
		m.entries[tag] = byTag
	}

	byTag[sessionKey] = entry{
		value:     value,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// Invalidate usuwa wszystkie wpisy dla podanych tagów. Każdy zapamiętany
// widok koszyka, wypożyczeń czy checkoutu jest nieaktualny od chwili
// potwierdzenia wypożyczenia i musi zostać pobrany ponownie.
func (m *Manager) Invalidate(tags ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		delete(m.entries, tag)
	}
}

// InvalidateSession usuwa wpisy jednej sesji ze wszystkich tagów
// (np. przy wylogowaniu)
func (m *Manager) InvalidateSession(sessionKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, byTag := range m.entries {
		delete(byTag, sessionKey)
	}
}

// cleanupExpired usuwa wygasłe wpisy w stałych odstępach
func (m *Manager) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		m.mu.Lock()
		for tag, byTag := range m.entries {
			for key, e := range byTag {
				if now.After(e.expiresAt) {
					delete(byTag, key)
				}
			}
			if len(byTag) == 0 {
				delete(m.entries, tag)
			}
		}
		m.mu.Unlock()
	}
}
