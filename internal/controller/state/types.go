package state

import (
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/service"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Заявка рассчитана и ждёт /confirm или /discard
	StateAwaitingConfirmation UserState = "awaiting_confirmation"
)

// Draft заявка на бронь, показанная пользователю, но ещё не зарегистрированная
type Draft struct {
	Template *model.ReservationTemplate
	Quote    *service.Quote
}

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Draft     *Draft
	UpdatedAt time.Time
}
