package update

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/kojioka/kojioka-go/pkg/buildinfo"
	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations/goproxy"
	"github.com/kojioka/kojioka-go/pkg/observability"
)

const (
	// DefaultInterval is the time between two scheduled checks.
	DefaultInterval = 5 * time.Minute

	// DefaultCommand upgrades the library in a Go module.
	DefaultCommand = "go get " + buildinfo.ModulePath + "@latest"

	defaultCheckTimeout = 10 * time.Second
)

// Registry reports the latest published version of a package.
type Registry interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// State is the notifier's activity.
type State int32

const (
	StateIdle State = iota
	StateChecking
)

func (s State) String() string {
	if s == StateChecking {
		return "checking"
	}
	return "idle"
}

// Notifier periodically checks a Registry for a newer release.
type Notifier struct {
	registry     Registry
	pkg          string
	command      string
	schedule     cron.Schedule
	logger       *log.Logger
	hooks        observability.UpdateHooks
	version      func() (string, error)
	notify       func(Notice)
	checkTimeout time.Duration

	state atomic.Int32

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithRegistry sets where the latest version is looked up.
// Defaults to the Go module proxy.
func WithRegistry(r Registry) Option {
	return func(n *Notifier) { n.registry = r }
}

// WithPackage sets the name looked up on the registry.
func WithPackage(name string) Option {
	return func(n *Notifier) { n.pkg = name }
}

// WithCommand sets the upgrade command shown in advisories.
func WithCommand(cmd string) Option {
	return func(n *Notifier) { n.command = cmd }
}

// WithSchedule sets when checks run after the initial one.
func WithSchedule(s cron.Schedule) Option {
	return func(n *Notifier) { n.schedule = s }
}

// WithLogger sets the log sink. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(n *Notifier) { n.logger = l }
}

// WithHooks sets per-notifier update hooks.
func WithHooks(h observability.UpdateHooks) Option {
	return func(n *Notifier) { n.hooks = h }
}

// WithVersionFunc sets how the installed version is read.
func WithVersionFunc(fn func() (string, error)) Option {
	return func(n *Notifier) { n.version = fn }
}

// WithNoticeFunc sets where advisories go. Defaults to a warning on the
// logger.
func WithNoticeFunc(fn func(Notice)) Option {
	return func(n *Notifier) { n.notify = fn }
}

// WithCheckTimeout bounds a single registry lookup.
func WithCheckTimeout(d time.Duration) Option {
	return func(n *Notifier) { n.checkTimeout = d }
}

// NewNotifier creates an idle Notifier.
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		pkg:          buildinfo.ModulePath,
		command:      DefaultCommand,
		schedule:     cron.Every(DefaultInterval),
		checkTimeout: defaultCheckTimeout,
		version: func() (string, error) {
			return buildinfo.Current(), nil
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.registry == nil {
		n.registry = goproxy.NewClient(nil, 0)
	}
	if n.logger == nil {
		n.logger = log.Default()
	}
	if n.notify == nil {
		n.notify = func(notice Notice) { n.logger.Warn(notice.String()) }
	}
	return n
}

// ParseSchedule parses a cron expression or descriptor such as
// "@every 30m", "@hourly" or "0 * * * *". An empty spec yields the default
// five-minute interval.
func ParseSchedule(spec string) (cron.Schedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return cron.Every(DefaultInterval), nil
	}
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return s, nil
}

// State returns whether a check is in progress.
func (n *Notifier) State() State {
	return State(n.state.Load())
}

func (n *Notifier) hooksOrDefault() observability.UpdateHooks {
	if n.hooks != nil {
		return n.hooks
	}
	return observability.Update()
}

// Check runs one version check. It returns the advisory that was emitted,
// or nil when the installed version is current, the check failed, or
// another check is already in progress. It never panics.
func (n *Notifier) Check(ctx context.Context) (notice *Notice) {
	if !n.state.CompareAndSwap(int32(StateIdle), int32(StateChecking)) {
		n.logger.Debug("update check already in progress")
		return nil
	}
	defer n.state.Store(int32(StateIdle))

	defer func() {
		if r := recover(); r != nil {
			n.fail(ctx, kerrors.New(kerrors.ErrCodeInternal, "panic: %v", r))
			notice = nil
		}
	}()

	hooks := n.hooksOrDefault()
	hooks.OnCheckStart(ctx, n.pkg)

	current, err := n.version()
	if err != nil {
		n.fail(ctx, fmt.Errorf("%w: %v", ErrNoLocalVersion, err))
		return nil
	}
	if strings.TrimSpace(current) == "" {
		n.fail(ctx, ErrNoLocalVersion)
		return nil
	}
	if isDevBuild(current) {
		n.logger.Debug("skipping update check for development build", "version", current)
		return nil
	}

	lookupCtx := ctx
	if n.checkTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, n.checkTimeout)
		defer cancel()
	}
	latest, err := n.registry.LatestVersion(lookupCtx, n.pkg)
	if err != nil {
		if ctx.Err() != nil {
			n.logger.Debug("update check cancelled")
			return nil
		}
		n.fail(ctx, err)
		return nil
	}

	newer, err := Newer(current, latest)
	if err != nil {
		n.fail(ctx, err)
		return nil
	}
	if !newer {
		n.logger.Debug("up to date", "version", current, "latest", latest)
		return nil
	}

	notice = &Notice{Package: n.pkg, Current: current, Latest: latest, Command: n.command}
	n.notify(*notice)
	hooks.OnUpdateAvailable(ctx, n.pkg, current, latest)
	return notice
}

func (n *Notifier) fail(ctx context.Context, err error) {
	kind := Classify(err)
	if kind.Transient() {
		n.logger.Debug("update check skipped", "kind", kind, "err", err)
	} else {
		n.logger.Error("update check failed", "kind", kind, "err", err)
	}
	n.hooksOrDefault().OnCheckFailed(ctx, n.pkg, kind.String(), err)
}

// Start runs a check immediately and then on every schedule tick until Stop
// is called or ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running() {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	n.cancel, n.done = cancel, done

	go n.run(ctx, done)
	return nil
}

// running must be called with mu held.
func (n *Notifier) running() bool {
	if n.done == nil {
		return false
	}
	select {
	case <-n.done:
		return false
	default:
		return true
	}
}

func (n *Notifier) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	n.Check(ctx)
	for {
		now := time.Now()
		next := n.schedule.Next(now)
		if next.IsZero() {
			return
		}
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		n.Check(ctx)
	}
}

// Stop cancels the background loop and waits for it to exit. Stop on an
// idle notifier is a no-op.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel, n.done = nil, nil
	n.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the background loop is active.
func (n *Notifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running()
}
