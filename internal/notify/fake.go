package notify

// FakeNotifier records notifications for test assertions.
type FakeNotifier struct {
	// Directives contains all directives passed to Notify, in order.
	Directives []Directive

	// Cancels counts Cancel calls.
	Cancels int

	// NotifyError, if set, will be returned by Notify.
	NotifyError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeNotifier creates a FakeNotifier for testing.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

// Notify records the directive.
func (f *FakeNotifier) Notify(d Directive) error {
	if f.NotifyError != nil {
		return f.NotifyError
	}
	f.Directives = append(f.Directives, d)
	return nil
}

// Cancel records the cancellation.
func (f *FakeNotifier) Cancel() error {
	f.Cancels++
	return nil
}

// Close marks the notifier as closed.
func (f *FakeNotifier) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent directive, or nil when none was recorded.
func (f *FakeNotifier) Last() *Directive {
	if len(f.Directives) == 0 {
		return nil
	}
	return &f.Directives[len(f.Directives)-1]
}

// Reset clears recorded calls.
func (f *FakeNotifier) Reset() {
	f.Directives = nil
	f.Cancels = 0
	f.NotifyError = nil
	f.Closed = false
}
