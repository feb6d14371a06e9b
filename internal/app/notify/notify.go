package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for presentation.
type Kind string

const (
	KindInfo    Kind = "info"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

// DismissAfter is how long a notification stays visible before it is
// dismissed automatically.
const DismissAfter = 4 * time.Second

// Notification is a transient operator-facing message.
type Notification struct {
	ID      string
	Message string
	Kind    Kind
	Visible bool
}

// Notifier holds at most one outstanding notification. Showing a new
// one replaces the current one and restarts the auto-dismiss timer, so
// the newest message always gets the full display window.
type Notifier struct {
	mu      sync.Mutex
	current Notification
	timer   *time.Timer
}

func New() *Notifier {
	return &Notifier{}
}

// Show replaces any current notification with a new one and arms the
// auto-dismiss timer. It returns the notification's identifier.
func (n *Notifier) Show(message string, kind Kind) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	id := uuid.New().String()
	n.current = Notification{ID: id, Message: message, Kind: kind, Visible: true}
	n.timer = time.AfterFunc(DismissAfter, func() { n.dismiss(id) })
	return id
}

func (n *Notifier) Info(message string) string    { return n.Show(message, KindInfo) }
func (n *Notifier) Error(message string) string   { return n.Show(message, KindError) }
func (n *Notifier) Success(message string) string { return n.Show(message, KindSuccess) }
func (n *Notifier) Warning(message string) string { return n.Show(message, KindWarning) }

// Current returns the outstanding notification and whether one is
// visible.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.current.Visible
}

// Dismiss hides the current notification immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current.Visible = false
}

// dismiss hides the notification only if it is still the one the timer
// was armed for; a replacement keeps its own window.
func (n *Notifier) dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current.ID == id {
		n.current.Visible = false
	}
}
