package notify

import "log"

// LogNotifier writes directives to the process log. Used when no MQTT
// broker is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the directive.
func (n *LogNotifier) Notify(d Directive) error {
	log.Printf("NOTIFY [%s] %s: %s", d.LevelName, d.Title, d.Text)
	return nil
}

// Cancel logs the cancellation.
func (n *LogNotifier) Cancel() error {
	log.Printf("NOTIFY cancel")
	return nil
}

// Close is a no-op.
func (n *LogNotifier) Close() error {
	return nil
}
