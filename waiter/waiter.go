package waiter

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cg14823/outage-wait/outage"
	"github.com/cg14823/outage-wait/store"

	"go.uber.org/zap"
)

// DefaultSleepCeiling bounds a single sleep when the caller does not set
// one.
const DefaultSleepCeiling = 300 * time.Second

const timeFormat = "02/01/2006 15:04:05"

// Options selects the outage to wait for. Exactly one of OutageID and
// Active must be set.
type Options struct {
	OutageID     int64
	Active       bool
	SleepCeiling time.Duration
}

// Notifier is told when the awaited window opens. The returned channel
// closes once the notification has been delivered or given up on.
type Notifier interface {
	AsyncStartNotification(o *outage.Outage) chan struct{}
}

type Waiter struct {
	store    store.OutageStore
	clock    Clock
	notifier Notifier
	out      io.Writer
	logger   *zap.SugaredLogger
}

// New builds a waiter over the given schedule. notifier may be nil. out
// receives the countdown and "started" lines; diagnostics go to the
// logger at debug level.
func New(st store.OutageStore, clock Clock, notifier Notifier, out io.Writer, logger *zap.Logger) *Waiter {
	return &Waiter{
		store:    st,
		clock:    clock,
		notifier: notifier,
		out:      out,
		logger:   logger.Sugar(),
	}
}

// Run blocks until the selected outage begins. It fails fast: a missing
// record, a record edited mid-wait, or a window that has already closed
// all abort the wait with a terminal error.
func (w *Waiter) Run(ctx context.Context, opts Options) error {
	if opts.SleepCeiling <= 0 {
		opts.SleepCeiling = DefaultSleepCeiling
	}

	snapshot, err := w.resolveTarget(opts)
	if err != nil {
		return err
	}

	now := w.clock.Now()
	for {
		// Staleness has to be caught before acting on the boundaries,
		// so the re-fetch comes first on every iteration.
		w.logger.Debugw("fetching outage", "id", snapshot.ID)
		current, err := w.store.FindOutageByID(snapshot.ID)
		if err != nil {
			return fmt.Errorf("could not fetch outage %d: %w", snapshot.ID, err)
		}

		if !current.Equal(snapshot) {
			return fmt.Errorf("outage %d was modified mid-wait: %w", snapshot.ID, ErrOutageChanged)
		}

		if snapshot.HasEnded(now) {
			return fmt.Errorf("outage %d %q ended at %s: %w",
				snapshot.ID, snapshot.Title, snapshot.End.Format(timeFormat), ErrAlreadyEnded)
		}

		if snapshot.IsOngoing(now) {
			fmt.Fprintf(w.out, "outage %d %q has started\n", snapshot.ID, snapshot.Title)
			if w.notifier != nil {
				w.logger.Debugw("sending start notification", "id", snapshot.ID)
				<-w.notifier.AsyncStartNotification(snapshot)
			}

			return nil
		}

		countdown := snapshot.Countdown(now)
		fmt.Fprintf(w.out, "outage %d %q starts in %s\n",
			snapshot.ID, snapshot.Title, countdown.Round(time.Second))

		sleepFor := countdown
		if sleepFor > opts.SleepCeiling {
			sleepFor = opts.SleepCeiling
		}

		w.logger.Debugw("sleeping", "duration", sleepFor.String())
		now, err = w.clock.Sleep(ctx, sleepFor)
		if err != nil {
			return err
		}
	}
}

func (w *Waiter) resolveTarget(opts Options) (*outage.Outage, error) {
	if opts.Active && opts.OutageID != 0 {
		return nil, fmt.Errorf("--active and --outage-id are mutually exclusive: %w", ErrUsage)
	}

	if !opts.Active && opts.OutageID == 0 {
		return nil, fmt.Errorf("one of --active or --outage-id must be set: %w", ErrUsage)
	}

	if opts.Active {
		w.logger.Debugw("looking up active outage")
		o, err := w.store.FindActiveOutage()
		if err != nil {
			return nil, fmt.Errorf("could not look up active outage: %w", err)
		}

		if o == nil {
			return nil, fmt.Errorf("no outage is currently active: %w", ErrNotFound)
		}

		return o, nil
	}

	if opts.OutageID <= 0 {
		return nil, fmt.Errorf("outage id must be a positive integer: %w", ErrUsage)
	}

	w.logger.Debugw("looking up outage", "id", opts.OutageID)
	o, err := w.store.FindOutageByID(opts.OutageID)
	if err != nil {
		return nil, fmt.Errorf("could not look up outage %d: %w", opts.OutageID, err)
	}

	if o == nil {
		return nil, fmt.Errorf("no outage with id %d: %w", opts.OutageID, ErrNotFound)
	}

	return o, nil
}
