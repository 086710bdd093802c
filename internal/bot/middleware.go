package bot

import (
	"runtime/debug"
	"sync"
)

// withRecovery ловит панику в обработчике одного апдейта, чтобы
// бот не падал целиком из-за одного кривого сообщения.
func (b *Bot) withRecovery(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.ErrorsTotal.Inc()
			}
			b.logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Recovered from panic in update handler")
		}
	}()
	fn()
}

// lockUser берёт мьютекс конкретного пользователя и возвращает unlock.
func (b *Bot) lockUser(userID int64) func() {
	v, _ := b.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
