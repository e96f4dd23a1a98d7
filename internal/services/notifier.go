package services

// Level classifies UI-facing notifications.
type Level int

const (
	LevelSuccess Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return ""
	}
}

// Notifier receives UI-facing events from the request pipeline and job
// tracker: toast notifications, busy-indicator transitions, and
// redirect-to-login requests on session destruction.
//
// Implementations must tolerate calls from multiple goroutines.
type Notifier interface {
	// Notify surfaces a classified message to the user.
	Notify(level Level, message string)

	// BusyChanged fires when the busy reference count crosses zero:
	// true on 0→1, false on 1→0.
	BusyChanged(active bool)

	// RedirectToLogin fires when an unauthenticated failure destroys the session.
	RedirectToLogin()
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(Level, string)  {}
func (NopNotifier) BusyChanged(bool)      {}
func (NopNotifier) RedirectToLogin()      {}
