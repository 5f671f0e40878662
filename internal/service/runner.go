package service

import (
	"log"
	"time"
)

// Runner drives the check cycles: one at a time, every update interval,
// earlier when the monitor asks for a shorter delay or when the log table
// changes underneath it.
type Runner struct {
	checker  *CheckerService
	interval time.Duration

	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewRunner creates a runner with the given base interval between cycles.
func NewRunner(checker *CheckerService, interval time.Duration) *Runner {
	return &Runner{
		checker:  checker,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the cycle loop. The first cycle runs immediately.
func (r *Runner) Start() {
	go r.loop()
}

// Trigger requests an early cycle. Never blocks; a pending trigger is
// enough.
func (r *Runner) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Stop terminates the loop and waits for the running cycle to finish.
func (r *Runner) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Runner) loop() {
	defer close(r.done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-timer.C:
		case <-r.trigger:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		next := r.interval
		delay, err := r.checker.RunCycle(time.Now().UnixMilli())
		if err != nil {
			// A failed cycle produces no state change; the next scheduled
			// cycle is the retry.
			log.Printf("check cycle failed: %v", err)
		} else if delay > 0 {
			if d := time.Duration(delay)*time.Millisecond + notifyBackdate*time.Millisecond; d < next {
				next = d
			}
		}

		timer.Reset(next)
	}
}
