package zipsearch

import (
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
)

// Engine lifecycle states. Only a Ready engine accepts queries; Closed is
// terminal.
const (
	stateUninitialized int32 = iota
	stateLoading
	stateReady
	stateClosed
)

// DefaultRadiusMiles is the search radius applied when a Query supplies a
// coordinate pair without a radius.
const DefaultRadiusMiles = 25.0

// Config holds engine construction options.
type Config struct {
	CellLevel     int     // S2 cell level of the spatial grid
	DefaultRadius float64 // radius in miles when a Query omits one
	BatchWorkers  int     // goroutines used by batch lookups
}

// Option is a functional option for configuring an Engine.
type Option func(*Config)

// WithCellLevel sets the S2 cell level of the spatial grid.
func WithCellLevel(level int) Option {
	return func(c *Config) {
		c.CellLevel = level
	}
}

// WithDefaultRadius sets the radius in miles used when a Query supplies
// coordinates without a radius.
func WithDefaultRadius(miles float64) Option {
	return func(c *Config) {
		c.DefaultRadius = miles
	}
}

// WithBatchWorkers sets the number of goroutines used by batch lookups.
func WithBatchWorkers(n int) Option {
	return func(c *Config) {
		c.BatchWorkers = n
	}
}

func defaultConfig() *Config {
	return &Config{
		CellLevel:     defaultCellLevel,
		DefaultRadius: DefaultRadiusMiles,
		BatchWorkers:  runtime.NumCPU(),
	}
}

// Engine answers lookup queries against a fixed catalog of zipcode
// records. All indices are built once at construction; after that the
// entire index set is immutable and safe for unsynchronized concurrent
// reads.
//
// Close must only be called after all queries have completed. After Close
// returns, every query fails with ErrEngineClosed.
type Engine struct {
	cfg      *Config
	store    *recordStore
	cities   *cityStateIndex
	prefixes *prefixIndex
	grid     *spatialGrid
	bounds   *boundsIndex
	state    atomic.Int32
}

// New builds an engine from an in-memory catalog. The input is validated
// and indexed once; the records are never mutated afterwards. A load
// failure leaves no usable engine behind.
func New(records []ZipcodeRecord, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Engine{cfg: cfg}
	e.state.Store(stateLoading)

	store, err := newRecordStore(records)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	bounds, err := buildBoundsIndex(store.records)
	if err != nil {
		return nil, fmt.Errorf("building bounds index: %w", err)
	}

	e.store = store
	e.cities = buildCityStateIndex(store.records)
	e.prefixes = buildPrefixIndex(store.records)
	e.grid = buildSpatialGrid(store.records, cfg.CellLevel)
	e.bounds = bounds

	e.state.Store(stateReady)
	return e, nil
}

// Open builds an engine from a snapshot file.
func Open(path string, opts ...Option) (*Engine, error) {
	records, err := LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	return New(records, opts...)
}

// OpenReader builds an engine from an in-memory snapshot buffer.
func OpenReader(r io.Reader, opts ...Option) (*Engine, error) {
	records, err := ReadSnapshot(r)
	if err != nil {
		return nil, err
	}
	return New(records, opts...)
}

// Close releases the engine's indices and record catalog together. It is
// idempotent; any query issued afterwards fails with ErrEngineClosed.
func (e *Engine) Close() error {
	if e.state.Swap(stateClosed) == stateClosed {
		return nil
	}
	e.store = nil
	e.cities = nil
	e.prefixes = nil
	e.grid = nil
	e.bounds = nil
	return nil
}

// ready reports whether the engine accepts queries.
func (e *Engine) ready() error {
	switch e.state.Load() {
	case stateReady:
		return nil
	case stateClosed:
		return ErrEngineClosed
	default:
		return ErrEngineNotReady
	}
}

// Len returns the number of records in the catalog.
func (e *Engine) Len() int {
	if e.ready() != nil {
		return 0
	}
	return e.store.len()
}

// collect materializes record copies for a sequence of ids.
func (e *Engine) collect(ids []int) []ZipcodeRecord {
	out := make([]ZipcodeRecord, len(ids))
	for i, id := range ids {
		out[i] = e.store.record(id)
	}
	return out
}

// ByZipcode returns the record for an exact zipcode, or nil when the
// catalog has no such key. All-digit inputs shorter than five digits are
// zero-padded first.
func (e *Engine) ByZipcode(zipcode string) (*ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	id, ok := e.store.lookup(normalizeZipcode(zipcode))
	if !ok {
		return nil, nil
	}
	r := e.store.record(id)
	return &r, nil
}

// ByCityAndState returns all records for a (city, state) pair in catalog
// load order. State accepts 2-letter codes or full names.
func (e *Engine) ByCityAndState(city, state string) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.collect(e.cities.byCityAndState(city, state)), nil
}

// ByCity returns all records for a city across every state, in ascending
// state order then load order.
func (e *Engine) ByCity(city string) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.collect(e.cities.byCity(city)), nil
}

// ByState returns all records in a state, in catalog load order.
func (e *Engine) ByState(state string) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.collect(e.cities.byState(state)), nil
}

// ByPrefix returns all records whose zipcode starts with prefix, in
// ascending zipcode order. The empty prefix returns the full catalog.
func (e *Engine) ByPrefix(prefix string) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.collect(e.prefixes.byPrefix(prefix)), nil
}

// ByCoordinates returns all records within radius miles of the point,
// sorted ascending by great-circle distance with ties broken by zipcode.
func (e *Engine) ByCoordinates(lat, lng, radius float64) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	matches, err := e.grid.search(e.store, lat, lng, radius, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.id
	}
	return e.collect(ids), nil
}

// ByBoundingBox returns the records whose stored bounding box contains the
// point, in ascending zipcode order. Records without full bounds never
// match.
func (e *Engine) ByBoundingBox(lat, lng float64) ([]ZipcodeRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := validateSearchDisc(lat, lng, 0); err != nil {
		return nil, err
	}
	ids, err := e.bounds.containing(e.store, lat, lng)
	if err != nil {
		return nil, err
	}
	return e.collect(ids), nil
}

// SuggestCities returns known city names within maxDist edits of the
// input, ordered by ascending edit distance then name. maxDist is capped
// at 3; zero or negative selects the cap.
func (e *Engine) SuggestCities(city string, maxDist int) ([]string, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return suggestCities(e.cities.cityNames, city, maxDist), nil
}
