package occupancy

import "time"

// runtimeTimerFacility реализация TimerFacility поверх time.AfterFunc
type runtimeTimerFacility struct{}

// NewTimerFacility возвращает production реализацию отложенного исполнения
func NewTimerFacility() TimerFacility {
	return runtimeTimerFacility{}
}

// Schedule планирует вызов fn в момент at
// Момент в прошлом означает немедленный вызов в отдельной горутине
func (runtimeTimerFacility) Schedule(at time.Time, fn func()) TimerHandle {
	return runtimeTimerHandle{timer: time.AfterFunc(time.Until(at), fn)}
}

type runtimeTimerHandle struct {
	timer *time.Timer
}

// Stop отменяет таймер; false - колбэк уже выполнен или выполняется
func (h runtimeTimerHandle) Stop() bool {
	return h.timer.Stop()
}
