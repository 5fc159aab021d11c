package broker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"scribe/interfaces"
	"scribe/model"
)

type operation int

const (
	sub operation = iota
	pub
	unsub
	shutdown
)

var ErrStopped = errors.New("broker is not running")

type cmd struct {
	op      operation
	sub     *Subscription
	updates []Update
}

// Server fans committed updates out to subscriptions. A single loop
// goroutine owns the subscriber set, so a subscription accepted before a
// publish sees it and one accepted after does not.
type Server struct {
	cmds    chan cmd
	cmdsCap int
	quit    chan struct{}
	done    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	running   atomic.Bool
	count     atomic.Int64
}

var _ interfaces.CommitObserver = (*Server)(nil)

type Option func(*Server)

// BufferCapacity allows to specify capacity for the internal command
// channel. A larger buffer lets commits return before subscribers are
// matched.
func BufferCapacity(cap int) Option {
	return func(s *Server) {
		if cap > 0 {
			s.cmdsCap = cap
		}
	}
}

func NewServer(options ...Option) *Server {
	s := &Server{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}
	s.cmds = make(chan cmd, s.cmdsCap)
	return s
}

func (s *Server) Start() {
	s.startOnce.Do(func() {
		s.running.Store(true)
		go s.loop(make(map[string]*Subscription))
	})
}

// Stop ends every subscription with ErrServerStopped.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if !s.running.Load() {
			close(s.quit)
			return
		}
		s.cmds <- cmd{op: shutdown}
		<-s.done
	})
}

// NumSubscriptions returns the number of live subscriptions.
func (s *Server) NumSubscriptions() int {
	return int(s.count.Load())
}

// Subscribe starts a subscription that sees every update published after it
// returns.
func (s *Server) Subscribe(ctx context.Context, f Filter) (*Subscription, error) {
	subscription := newSubscription(s, f)
	select {
	case s.cmds <- cmd{op: sub, sub: subscription}:
		return subscription, nil
	case <-ctx.Done():
		subscription.cancel(ctx.Err())
		return nil, ctx.Err()
	case <-s.quit:
		subscription.cancel(ErrServerStopped)
		return nil, ErrStopped
	}
}

func (s *Server) unsubscribe(subscription *Subscription) {
	select {
	case s.cmds <- cmd{op: unsub, sub: subscription}:
	case <-s.quit:
	}
}

// Publish queues updates for every matching subscription, preserving order.
func (s *Server) Publish(ctx context.Context, updates ...Update) error {
	if len(updates) == 0 {
		return nil
	}
	select {
	case s.cmds <- cmd{op: pub, updates: updates}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrStopped
	}
}

// OnCommit publishes a committed block: model registrations first, then
// entity writes.
func (s *Server) OnCommit(ctx context.Context, summary model.CommitSummary) {
	if err := s.Publish(ctx, updates(summary)...); err != nil {
		slog.Warn("dropping commit updates", "block", summary.Block, "error", err)
	}
}

func (s *Server) loop(subs map[string]*Subscription) {
	defer close(s.done)
	for cmd := range s.cmds {
		switch cmd.op {
		case sub:
			subs[cmd.sub.id] = cmd.sub
			s.count.Store(int64(len(subs)))
		case unsub:
			delete(subs, cmd.sub.id)
			s.count.Store(int64(len(subs)))
		case pub:
			for _, u := range cmd.updates {
				s.send(subs, u)
			}
			s.count.Store(int64(len(subs)))
		case shutdown:
			close(s.quit)
			for id, subscription := range subs {
				subscription.cancel(ErrServerStopped)
				delete(subs, id)
			}
			s.count.Store(0)
			return
		}
	}
}

func (s *Server) send(subs map[string]*Subscription, u Update) {
	for id, subscription := range subs {
		if changed(subscription.filter, u) {
			slog.Debug("ending subscription on model change", "id", id, "model", u.Model.Name, "version", u.Model.Version)
			subscription.cancel(ErrModelChanged)
			delete(subs, id)
			continue
		}
		if subscription.filter.Matches(u) {
			subscription.push(u)
		}
	}
}

// changed reports whether u re-registers the model an entity subscription
// is bound to.
func changed(f Filter, u Update) bool {
	return u.Kind == ModelRegistered && u.Model.Version > 1 &&
		f.Kind == EntityUpdated && f.Model != "" && matchModel(f.Model, u.Model.Name)
}
