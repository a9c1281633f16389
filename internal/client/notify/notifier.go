// Package notify holds the single transient error slot shown to the user.
// A new message replaces the current one and restarts its timer; the slot
// clears itself when the timer fires.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// DefaultTimeout is how long a message stays visible.
const DefaultTimeout = 3 * time.Second

type Notifier struct {
	mu      sync.Mutex
	timeout time.Duration
	timer   *time.Timer
	message string
	seq     uint64
}

func New(timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{timeout: timeout}
}

// Show replaces the current message with msg.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.message = msg
	n.timer = time.AfterFunc(n.timeout, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// a newer message owns the slot
		if n.seq == seq {
			n.message = ""
			n.timer = nil
		}
	})
}

// Error shows the user-facing text of err. Nil errors are ignored.
func (n *Notifier) Error(err error) {
	if err == nil {
		return
	}
	n.Show(Message(err))
}

// Current returns the visible message, or "" if the slot is empty.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Dismiss clears the slot and stops its timer.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.message = ""
}

// Message maps err to the text shown to the user. Known domain errors get
// their own wording; anything else is passed through.
func Message(err error) string {
	switch {
	case errors.Is(err, common.ErrNameSpecialCharacters):
		return "Name must not contain special characters"
	case errors.Is(err, common.ErrNumberNotNumeric):
		return "Phone number must be numeric"
	case errors.Is(err, common.ErrDuplicateName):
		return "Contact name must be unique"
	case errors.Is(err, common.ErrPhoneAlreadyUsed):
		return "Phone number has been used by another contact"
	case errors.Is(err, common.ErrStaleContact):
		return "Contact no longer exists, it may have been deleted"
	case errors.Is(err, common.ErrEditInProgress):
		return "An unfinished edit exists for this contact, resume or abandon it"
	case errors.Is(err, common.ErrNetwork):
		return "Network error: " + err.Error()
	default:
		return err.Error()
	}
}
