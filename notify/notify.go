// Package notify provides desktop notifications using beeep.
package notify

import (
	"fmt"

	"github.com/fwojciec/commitsuggest"
	"github.com/gen2brain/beeep"
)

// Compile-time interface verification.
var _ commitsuggest.Notifier = (*Notifier)(nil)

// SendFunc delivers a notification. beeep.Notify satisfies it.
type SendFunc func(title, message string, icon any) error

// Notifier shows desktop notifications when enabled.
type Notifier struct {
	enabled bool
	send    SendFunc
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender replaces the delivery function.
func WithSender(send SendFunc) Option {
	return func(n *Notifier) {
		n.send = send
	}
}

// New creates a notifier. A disabled notifier drops every notification.
func New(enabled bool, opts ...Option) *Notifier {
	n := &Notifier{enabled: enabled, send: beeep.Notify}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.enabled {
		return nil
	}
	return n.send(title, message, "")
}

// NotifySuggestion announces a finished suggestion request.
func (n *Notifier) NotifySuggestion(s *commitsuggest.Suggestion) error {
	if s.NotRepository {
		return n.Notify("Commit suggestion", fmt.Sprintf("%s is not a git repository", s.Path))
	}
	message := fmt.Sprintf("%s: %d file(s) summarized", s.Path, len(s.Files))
	if s.Truncated {
		message += fmt.Sprintf(", stopped at %s", s.FailedFile)
	}
	return n.Notify("Commit suggestion ready", message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}
