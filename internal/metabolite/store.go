package metabolite

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Dooders/Pyology/internal/constants"
)

// Default bounds for pools created through GetOrRegister.
const (
	defaultQuantity    = 0
	defaultMaxQuantity = 100
)

// Store is a registry of metabolite pools keyed by lower-cased name.
// Batch operations (Consume, Produce) run as a single critical section:
// the availability pre-check and the mutation cannot interleave with another
// mutation on the same store.
//
// Species must be registered before use. Lookups never create pools
// implicitly; GetOrRegister is the explicit opt-in for callers that want
// default creation.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Metabolite
	log  *slog.Logger
}

// NewStore returns an empty store. The logger receives the store's
// observability records (rate-limiting traces, auto-registration warnings);
// nil discards them.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		data: make(map[string]*Metabolite),
		log:  log,
	}
}

// Logger returns the store's logging sink. Reactions and pathways operating
// on the store report through it; they never branch on it.
func (s *Store) Logger() *slog.Logger { return s.log }

// Register adds a pool, or tops up an existing one. Registering an existing
// name adds quantity clamped to the pool's maximum rather than overwriting.
// A negative quantity or a quantity above maxQuantity is rejected.
func (s *Store) Register(name string, quantity, maxQuantity float64, metadata map[string]any) error {
	if quantity < 0 {
		return &QuantityError{Name: strings.ToLower(name), Attempted: quantity, Min: 0, Max: maxQuantity}
	}
	if quantity > maxQuantity {
		return &QuantityError{Name: strings.ToLower(name), Attempted: quantity, Min: 0, Max: maxQuantity}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	if existing, ok := s.data[key]; ok {
		merged := existing.Quantity() + quantity
		if merged > existing.max {
			merged = existing.max
		}
		return existing.Set(merged)
	}

	s.data[key] = &Metabolite{
		Name:     key,
		Label:    name,
		Unit:     constants.DefaultUnit,
		Metadata: metadata,
		quantity: quantity,
		min:      0,
		max:      maxQuantity,
	}
	return nil
}

// Get returns the pool for name, if registered.
func (s *Store) Get(name string) (*Metabolite, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.data[strings.ToLower(name)]
	return m, ok
}

// GetOrRegister returns the pool for name, creating it with default bounds
// if missing. Auto-creation is logged at WARN; it usually means a catalog or
// seeding gap.
func (s *Store) GetOrRegister(name string) *Metabolite {
	key := strings.ToLower(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.data[key]; ok {
		return m
	}
	m := &Metabolite{
		Name:     key,
		Label:    name,
		Unit:     constants.DefaultUnit,
		quantity: defaultQuantity,
		min:      0,
		max:      defaultMaxQuantity,
	}
	s.data[key] = m
	s.log.Warn("metabolite auto-registered with default bounds",
		"name", key, "quantity", defaultQuantity, "max_quantity", defaultMaxQuantity)
	return m
}

// Exists reports whether name is registered.
func (s *Store) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of registered pools.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Quantity returns the current quantity of name.
func (s *Store) Quantity(name string) (float64, error) {
	m, ok := s.Get(name)
	if !ok {
		return 0, &UnknownMetaboliteError{Name: strings.ToLower(name)}
	}
	return m.Quantity(), nil
}

// IsAvailable reports whether at least amount of name can be consumed.
func (s *Store) IsAvailable(name string, amount float64) (bool, error) {
	m, ok := s.Get(name)
	if !ok {
		return false, &UnknownMetaboliteError{Name: strings.ToLower(name)}
	}
	return m.Quantity() >= amount, nil
}

// Consume decrements the named pools by the given amounts, all-or-nothing.
// Every pool is checked before any is touched; if one check fails the whole
// batch is rejected and no quantities change. Sufficiency accounts for the
// pool's minimum: a decrement that would land below it fails the pre-check.
func (s *Store) Consume(amounts map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, amount := range amounts {
		m, ok := s.data[strings.ToLower(name)]
		if !ok {
			return &UnknownMetaboliteError{Name: strings.ToLower(name)}
		}
		if m.Quantity()-amount < m.min-constants.QuantityEpsilon {
			return &InsufficientMetaboliteError{
				Name:      m.Name,
				Requested: amount,
				Available: m.Quantity(),
			}
		}
	}
	for name, amount := range amounts {
		if err := s.data[strings.ToLower(name)].Adjust(-amount); err != nil {
			return err
		}
	}
	return nil
}

// Produce increments the named pools by the given amounts, all-or-nothing.
// Unregistered names are rejected; produce never creates species. An
// increment that would exceed a pool's maximum fails the whole batch with a
// QuantityError, surfaced to the caller rather than silently dropped.
func (s *Store) Produce(amounts map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, amount := range amounts {
		m, ok := s.data[strings.ToLower(name)]
		if !ok {
			return &UnknownMetaboliteError{Name: strings.ToLower(name)}
		}
		if next := m.Quantity() + amount; next > m.max+constants.QuantityEpsilon {
			return &QuantityError{Name: m.Name, Attempted: next, Min: m.min, Max: m.max}
		}
	}
	for name, amount := range amounts {
		if err := s.data[strings.ToLower(name)].Adjust(amount); err != nil {
			return err
		}
	}
	return nil
}

// ChangeQuantity adjusts name by delta, failing with a QuantityError if the
// result would leave the pool's bounds. This is the single mutation entry
// point for all pathway bookkeeping; nothing writes quantities directly.
func (s *Store) ChangeQuantity(name string, delta float64) error {
	m, ok := s.Get(name)
	if !ok {
		return &UnknownMetaboliteError{Name: strings.ToLower(name)}
	}
	return m.Adjust(delta)
}

// SetQuantity sets name to value, subject to the pool's bounds.
func (s *Store) SetQuantity(name string, value float64) error {
	m, ok := s.Get(name)
	if !ok {
		return &UnknownMetaboliteError{Name: strings.ToLower(name)}
	}
	return m.Set(value)
}

// Reset returns every pool to its minimum quantity.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.data {
		m.Reset()
	}
}

// Snapshot captures the current quantity of every pool.
func (s *Store) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]float64, len(s.data))
	for name, m := range s.data {
		snap[name] = m.Quantity()
	}
	return snap
}

// RestoreSnapshot sets every pool named in snap back to its captured
// quantity. Pools registered after the snapshot was taken are left alone.
func (s *Store) RestoreSnapshot(snap map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, quantity := range snap {
		m, ok := s.data[name]
		if !ok {
			return &UnknownMetaboliteError{Name: name}
		}
		if err := m.Set(quantity); err != nil {
			return err
		}
	}
	return nil
}

// Quantities returns a name to quantity map of every pool.
func (s *Store) Quantities() map[string]float64 {
	return s.Snapshot()
}

// Names returns the registered species names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State returns the requested attributes for every pool. With no attributes
// it reports quantity and energy.
func (s *Store) State(attrs ...string) map[string]map[string]any {
	if len(attrs) == 0 {
		attrs = []string{"quantity", "energy"}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := make(map[string]map[string]any, len(s.data))
	for name, m := range s.data {
		state[name] = m.State(attrs...)
	}
	return state
}

// TotalEnergy sums the free-energy contribution of every pool.
func (s *Store) TotalEnergy() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, m := range s.data {
		total += m.Energy()
	}
	return total
}
