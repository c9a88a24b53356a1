package occupancy

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// pairState состояние пары переходов одного бронирования
type pairState int

const (
	statePendingOccupy pairState = iota // ждёт перехода в OCCUPEE
	statePendingFree                    // ждёт перехода в LIBRE
	stateDone                           // оба перехода выполнены
	stateCancelled                      // пара отменена до срабатывания
)

// transitionPair пара таймеров occupy/free одного бронирования
// Не персистится: при рестарте процесса реестр теряется
type transitionPair struct {
	bookingID  int64
	terminalID int64
	state      pairState
	occupy     TimerHandle
	free       TimerHandle
}

// Scheduler планировщик переходов занятости терминалов
//
// На каждое активное бронирование держит пару таймеров: в startingDate
// терминал переводится в OCCUPEE, в endingDate - обратно в LIBRE.
// Реестр пар - единственное разделяемое состояние, он защищён мьютексом
// и передаётся планировщику явно (никаких глобальных карт).
//
// Известное ограничение: если два бронирования одного терминала
// пересекаются (что проверка конфликтов при создании должна исключать),
// free-колбэк первого может сработать, пока второй ещё активен, и
// терминал будет помечен свободным преждевременно.
type Scheduler struct {
	terminals    TerminalStore
	timers       TimerFacility
	timeProvider TimeProvider
	logger       Logger
	metrics      Metrics

	mu    sync.Mutex
	pairs map[int64]*transitionPair
}

// NewScheduler создает новый планировщик переходов занятости
func NewScheduler(terminals TerminalStore, timers TimerFacility, logger Logger, metrics Metrics) *Scheduler {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Scheduler{
		terminals:    terminals,
		timers:       timers,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
		pairs:        make(map[int64]*transitionPair),
	}
}

// Schedule планирует пару переходов для бронирования
//
// Повторный вызов для того же бронирования идемпотентен: прежняя пара
// отменяется до установки новой, так что живыми остаются не более одного
// occupy- и одного free-таймера на бронирование.
//
// startingDate не строго в будущем - occupy-таймер молча не ставится
// (состояние задним числом не меняем); free-таймер ставится, только если
// endingDate в будущем. Бронирование целиком в прошлом не планируется.
func (s *Scheduler) Schedule(bookingID, terminalID int64, startingDate, endingDate time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.pairs[bookingID]; ok {
		s.cancelLocked(prev)
		delete(s.pairs, bookingID)
		s.logger.Info("Schedule: rescheduling booking id=%d, previous transition pair cancelled", bookingID)
	}

	now := s.timeProvider.Now()

	if !endingDate.After(now) {
		s.logger.Warn("Schedule: booking id=%d ends in the past (%s), nothing to schedule",
			bookingID, endingDate.Format(time.RFC3339))
		return
	}

	pair := &transitionPair{
		bookingID:  bookingID,
		terminalID: terminalID,
	}

	if startingDate.After(now) {
		pair.state = statePendingOccupy
		pair.occupy = s.timers.Schedule(startingDate, func() { s.fireOccupy(pair) })
	} else {
		// Начало уже прошло: occupy молча пропускается
		pair.state = statePendingFree
		s.logger.Info("Schedule: booking id=%d starts in the past, occupy transition suppressed", bookingID)
	}

	pair.free = s.timers.Schedule(endingDate, func() { s.fireFree(pair) })

	s.pairs[bookingID] = pair

	s.logger.Info("Schedule: booking id=%d terminal id=%d, transitions at %s / %s",
		bookingID, terminalID, startingDate.Format(time.RFC3339), endingDate.Format(time.RFC3339))
}

// Cancel отменяет пару переходов бронирования
// Для неизвестного бронирования (уже сработало, не планировалось или уже
// отменено) - no-op, не ошибка; чужие таймеры не затрагиваются
func (s *Scheduler) Cancel(bookingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair, ok := s.pairs[bookingID]
	if !ok {
		return
	}

	s.cancelLocked(pair)
	delete(s.pairs, bookingID)
	s.logger.Info("Cancel: booking id=%d transition pair cancelled", bookingID)
}

// Pending возвращает количество зарегистрированных пар переходов
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pairs)
}

// cancelLocked останавливает оба таймера пары; вызывается под мьютексом
// Stop уже сработавшего таймера безвреден
func (s *Scheduler) cancelLocked(pair *transitionPair) {
	if pair.occupy != nil && pair.state == statePendingOccupy {
		if pair.occupy.Stop() {
			s.metrics.IncOccupancyTransition("occupy", "cancelled")
		}
	}
	if pair.free != nil && pair.state != stateDone && pair.state != stateCancelled {
		if pair.free.Stop() {
			s.metrics.IncOccupancyTransition("free", "cancelled")
		}
	}
	pair.state = stateCancelled
}

// fireOccupy колбэк occupy-таймера: переводит терминал в OCCUPEE
// Ошибка хранилища логируется и считается в метриках, но не
// пробрасывается: сбой одного перехода не должен ронять планировщик и
// не отменяет free-таймер этого же бронирования
func (s *Scheduler) fireOccupy(pair *transitionPair) {
	s.mu.Lock()
	if s.pairs[pair.bookingID] != pair || pair.state != statePendingOccupy {
		// Пара отменена или заменена между срабатыванием и захватом мьютекса
		s.mu.Unlock()
		return
	}
	pair.state = statePendingFree
	s.mu.Unlock()

	if err := s.terminals.SetOccupancy(context.Background(), pair.terminalID, domain.TerminalStatusOccupied); err != nil {
		s.logger.Error("fireOccupy: booking id=%d failed to mark terminal id=%d occupied: %v",
			pair.bookingID, pair.terminalID, err)
		s.metrics.IncOccupancyTransition("occupy", "failed")
		return
	}

	s.metrics.IncOccupancyTransition("occupy", "fired")
	s.logger.Info("fireOccupy: booking id=%d terminal id=%d marked occupied", pair.bookingID, pair.terminalID)
}

// fireFree колбэк free-таймера: переводит терминал в LIBRE и удаляет
// пару из реестра. Ошибки обрабатываются как в fireOccupy
func (s *Scheduler) fireFree(pair *transitionPair) {
	s.mu.Lock()
	if s.pairs[pair.bookingID] != pair || pair.state == stateCancelled || pair.state == stateDone {
		s.mu.Unlock()
		return
	}
	pair.state = stateDone
	delete(s.pairs, pair.bookingID)
	s.mu.Unlock()

	if err := s.terminals.SetOccupancy(context.Background(), pair.terminalID, domain.TerminalStatusAvailable); err != nil {
		s.logger.Error("fireFree: booking id=%d failed to mark terminal id=%d free: %v",
			pair.bookingID, pair.terminalID, err)
		s.metrics.IncOccupancyTransition("free", "failed")
		return
	}

	s.metrics.IncOccupancyTransition("free", "fired")
	s.logger.Info("fireFree: booking id=%d terminal id=%d marked free", pair.bookingID, pair.terminalID)
}
