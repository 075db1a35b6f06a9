package auth

import "os"
import "fmt"
import "log"
import "sync"
import "errors"
import "encoding/json"
import "github.com/google/uuid"
import "github.com/krumpled/krumsession/store/medium"

var (
	// ErrCorruptSnapshot is returned by Load when the persisted value cannot be parsed.
	ErrCorruptSnapshot = errors.New("auth: corrupt session snapshot")

	// ErrMediumUnavailable matches any failure reading, writing or deleting the snapshot.
	ErrMediumUnavailable = errors.New("auth: durable medium unavailable")

	errInvalidUTF8 = errors.New("session contains invalid UTF-8")
)

type mediumError struct {
	op  string
	err error
}

func (e *mediumError) Error() string {
	return fmt.Sprintf("auth: %s failed: %s", e.op, e.err)
}

func (e *mediumError) Unwrap() error {
	return e.err
}

func (e *mediumError) Is(target error) bool {
	return target == ErrMediumUnavailable
}

// Observer receives the current state on subscription and every state after it.
type Observer func(State)

type subscriber struct {
	id       uuid.UUID
	observer Observer
	active   bool
}

// delivery is a state change waiting to be handed to the subscribers that were
// registered when it was applied.
type delivery struct {
	state       State
	subscribers []*subscriber
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	store *SessionStore
	sub   *subscriber
	once  sync.Once
}

// ID identifies the subscription in diagnostics.
func (s *Subscription) ID() uuid.UUID {
	return s.sub.id
}

// Unsubscribe deregisters the observer. It is safe to call more than once and
// from inside the observer itself.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.store.remove(s.sub) })
}

// SessionStore holds the current session, broadcasts every change to its
// observers and mirrors the state into a durable medium when one is configured.
//
// Observers run synchronously on the goroutine delivering the change. A change
// made while another is being delivered, including one made by an observer, is
// queued and delivered in order by the goroutine already delivering.
type SessionStore struct {
	mu          sync.Mutex
	state       State
	subscribers []*subscriber
	pending     []delivery
	delivering  bool

	// persisting serializes writes so the medium ends on the latest state.
	persisting sync.Mutex

	medium medium.Medium
	key    string
	logger *log.Logger
}

// NewSessionStore returns a store holding the unauthenticated state. No I/O is
// performed until Load is called.
func NewSessionStore(options ...Option) *SessionStore {
	store := &SessionStore{
		key:    DefaultKey,
		logger: log.New(os.Stderr, "[auth] ", log.LstdFlags),
	}

	for _, apply := range options {
		apply(store)
	}

	return store
}

// OpenSessionStore returns a store that has already attempted to load the
// persisted snapshot. Load failures are logged and the default state kept.
func OpenSessionStore(options ...Option) *SessionStore {
	store := NewSessionStore(options...)
	store.Load()
	return store
}

// Load reads the persisted snapshot and adopts it as the current state. An
// absent snapshot, or a store with no medium, leaves the state untouched and
// returns nil. A snapshot that cannot be parsed is discarded; the returned error
// wraps ErrCorruptSnapshot.
func (s *SessionStore) Load() error {
	if s.medium == nil {
		return nil
	}

	raw, e := s.medium.Get(s.key)

	if errors.Is(e, medium.ErrNotFound) {
		s.logger.Printf("no persisted session under '%s'", s.key)
		return nil
	}

	if e != nil {
		s.logger.Printf("unable to read persisted session '%s': %s", s.key, e)
		return &mediumError{op: "load", err: e}
	}

	parsed := State{}

	if e := json.Unmarshal([]byte(raw), &parsed); e != nil {
		s.logger.Printf("unable to parse persisted session '%s': %s", s.key, e)
		return fmt.Errorf("%w: %s", ErrCorruptSnapshot, e)
	}

	s.logger.Printf("loaded persisted session '%s' (authenticated: %v)", s.key, parsed.Authenticated())
	s.set(parsed)
	return nil
}

// Current returns a copy of the current state.
func (s *SessionStore) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.copy()
}

// Subscribe registers the observer and invokes it with the current state.
func (s *SessionStore) Subscribe(observer Observer) *Subscription {
	sub := &subscriber{id: uuid.New(), observer: observer, active: true}

	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	s.enqueue(delivery{state: s.state.copy(), subscribers: []*subscriber{sub}})
	s.logger.Printf("observer '%s' subscribed", sub.id)

	return &Subscription{store: s, sub: sub}
}

// Login replaces the state with the given session, notifies every observer and
// then persists the snapshot. The returned error only describes the persistence
// outcome; the in-memory state is updated regardless.
func (s *SessionStore) Login(token string, user UserInfo) error {
	s.logger.Printf("login set state for user '%d' <%s>", user.ID, user.Email)
	s.set(State{Token: token, User: &user})
	return s.persist("login")
}

// Logout resets the state, notifies every observer and erases the snapshot.
// Calling it without an active session still notifies observers.
func (s *SessionStore) Logout() error {
	s.logger.Printf("logout")
	s.set(State{})
	return s.persist("logout")
}

// persist mirrors the current state into the medium: an empty state removes
// the snapshot, anything else overwrites it.
func (s *SessionStore) persist(op string) error {
	if s.medium == nil {
		return nil
	}

	s.persisting.Lock()
	defer s.persisting.Unlock()

	current := s.Current()

	if current.Equal(State{}) {
		if e := s.medium.Delete(s.key); e != nil {
			s.logger.Printf("unable to remove persisted session '%s': %s", s.key, e)
			return &mediumError{op: op, err: e}
		}

		return nil
	}

	if !current.valid() {
		s.logger.Printf("refusing to persist session '%s': not valid UTF-8", s.key)
		return &mediumError{op: op, err: errInvalidUTF8}
	}

	data, e := json.Marshal(current)

	if e != nil {
		s.logger.Printf("unable to serialize session: %s", e)
		return &mediumError{op: op, err: e}
	}

	if e := s.medium.Set(s.key, string(data)); e != nil {
		s.logger.Printf("unable to persist session '%s': %s", s.key, e)
		return &mediumError{op: op, err: e}
	}

	return nil
}

// set applies the state and queues it for the subscribers registered at the
// time of the change.
func (s *SessionStore) set(state State) {
	s.mu.Lock()
	s.state = state.copy()
	subscribers := make([]*subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.enqueue(delivery{state: state.copy(), subscribers: subscribers})
}

// enqueue must be called with mu held and releases it. When no other call is
// delivering, the caller drains the queue before returning.
func (s *SessionStore) enqueue(next delivery) {
	s.pending = append(s.pending, next)

	if s.delivering {
		s.mu.Unlock()
		return
	}

	s.delivering = true

	for len(s.pending) > 0 {
		current := s.pending[0]
		s.pending = s.pending[1:]

		for _, sub := range current.subscribers {
			if !sub.active {
				continue
			}

			s.mu.Unlock()
			s.notify(sub, current.state.copy())
			s.mu.Lock()
		}
	}

	s.pending = nil
	s.delivering = false
	s.mu.Unlock()
}

// notify invokes a single observer, recovering from a panic so the remaining
// observers still receive the change.
func (s *SessionStore) notify(sub *subscriber, state State) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("observer '%s' panicked: %v", sub.id, r)
		}
	}()

	sub.observer(state)
}

func (s *SessionStore) remove(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.active = false

	for i, candidate := range s.subscribers {
		if candidate.id == sub.id {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			break
		}
	}

	s.logger.Printf("observer '%s' unsubscribed", sub.id)
}
