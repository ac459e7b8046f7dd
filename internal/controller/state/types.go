package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния диалога добавления мероприятия
	StateEventDate  UserState = "event_date"
	StateEventTime  UserState = "event_time"
	StateEventTitle UserState = "event_title"
)

// Ключи временных данных диалога добавления мероприятия
const (
	KeyEventDate  = "event_date"
	KeyEventStart = "event_start"
	KeyEventEnd   = "event_end"
	KeyEventTitle = "event_title"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
