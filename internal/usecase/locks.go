package usecase

import "sync"

// ProjectLocks обеспечивает не более одной активной записи на проект:
// синхронизация и ручное оценивание берут один и тот же замок, чтобы
// два atomic-replace или replace+grade не перемешали старые и новые строки.
// In-process замок; при нескольких инстансах потребуется внешняя координация.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewProjectLocks создает новый менеджер замков.
func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*sync.Mutex)}
}

// TryAcquire пытается захватить замок проекта без ожидания.
// Возвращает release-функцию и false, если замок уже занят.
func (p *ProjectLocks) TryAcquire(projectID string) (func(), bool) {
	p.mu.Lock()
	lock, ok := p.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[projectID] = lock
	}
	p.mu.Unlock()

	if !lock.TryLock() {
		return nil, false
	}
	return lock.Unlock, true
}
