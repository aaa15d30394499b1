package state

import (
	"sync"
	"time"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // chatID -> UserData
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetDraft сохраняет черновик брони, заменяя предыдущий
func (sm *Manager) SetDraft(chatID int64, draft *Draft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[chatID] = &UserData{
		State:     StateAwaitingConfirmation,
		Draft:     draft,
		UpdatedAt: sm.now(),
	}
}

// GetDraft получает черновик без удаления
func (sm *Manager) GetDraft(chatID int64) (*Draft, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists && userData.Draft != nil {
		return userData.Draft, true
	}
	return nil, false
}

// TakeDraft забирает черновик и очищает состояние.
// Один черновик можно подтвердить только один раз.
func (sm *Manager) TakeDraft(chatID int64) (*Draft, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[chatID]
	if !exists || userData.Draft == nil {
		return nil, false
	}
	delete(sm.states, chatID)
	return userData.Draft, true
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

// EvictExpired удаляет черновики старше ttl и возвращает их количество
func (sm *Manager) EvictExpired(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-ttl)
	evicted := 0
	for chatID, userData := range sm.states {
		if userData.UpdatedAt.Before(cutoff) {
			delete(sm.states, chatID)
			evicted++
		}
	}
	return evicted
}

// Len количество активных диалогов
func (sm *Manager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.states)
}
