package broker

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrUnsubscribed is returned by Err when the subscriber cancelled.
	ErrUnsubscribed = errors.New("client unsubscribed")

	// ErrModelChanged is returned by Err when the model an entity
	// subscription filters on was re-registered with a new version.
	ErrModelChanged = errors.New("subscribed model changed")

	// ErrServerStopped is returned by Err when the broker shut down.
	ErrServerStopped = errors.New("broker stopped")
)

// Subscription is one subscriber's ordered, unbounded update stream. The
// broker appends to the queue without blocking; the pump moves updates to
// Out at the reader's pace.
type Subscription struct {
	id     string
	filter Filter
	server *Server
	out    chan Update

	mtx      sync.Mutex
	queue    []Update
	signal   chan struct{}
	canceled chan struct{}
	err      error
}

func newSubscription(s *Server, f Filter) *Subscription {
	sub := &Subscription{
		id:       uuid.NewString(),
		filter:   f,
		server:   s,
		out:      make(chan Update),
		signal:   make(chan struct{}, 1),
		canceled: make(chan struct{}),
	}
	go sub.pump()
	return sub
}

func (s *Subscription) ID() string { return s.id }

func (s *Subscription) Filter() Filter { return s.filter }

// Out delivers updates in commit order. It is closed once the subscription
// ends and no further update will be delivered.
func (s *Subscription) Out() <-chan Update { return s.out }

// Canceled is closed when the subscription ends.
func (s *Subscription) Canceled() <-chan struct{} { return s.canceled }

// Err returns nil while the subscription is active, the reason it ended
// afterwards.
func (s *Subscription) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.err
}

// Cancel withdraws interest. Pending updates are dropped.
func (s *Subscription) Cancel() {
	s.server.unsubscribe(s)
	s.cancel(ErrUnsubscribed)
}

func (s *Subscription) push(u Update) {
	s.mtx.Lock()
	if s.err != nil {
		s.mtx.Unlock()
		return
	}
	s.queue = append(s.queue, u)
	s.mtx.Unlock()
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription) cancel(err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.err != nil {
		return
	}
	s.err = err
	s.queue = nil
	close(s.canceled)
}

func (s *Subscription) pump() {
	defer close(s.out)
	for {
		select {
		case <-s.canceled:
			return
		case <-s.signal:
		}
		for {
			s.mtx.Lock()
			if len(s.queue) == 0 {
				s.mtx.Unlock()
				break
			}
			u := s.queue[0]
			s.queue[0] = Update{}
			s.queue = s.queue[1:]
			s.mtx.Unlock()

			select {
			case s.out <- u:
			case <-s.canceled:
				return
			}
		}
	}
}
