package state

import "sync"

// AssetPhase tracks the template asset. Pending moves to Loaded or Failed
// exactly once; there are no other transitions.
type AssetPhase int

const (
	AssetPending AssetPhase = iota
	AssetLoaded
	AssetFailed
)

func (p AssetPhase) String() string {
	switch p {
	case AssetPending:
		return "pending"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type SurfaceInfo struct {
	Width  int
	Height int
}

type ExportInfo struct {
	Path string
	Err  string
}

type State struct {
	Asset   AssetPhase
	Text    string
	Surface SurfaceInfo
	Redraws int
	Export  ExportInfo
}

// Store publishes the session state to readers outside the event goroutine.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Asset: AssetPending}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetAsset(phase AssetPhase) {
	store.mu.Lock()
	store.state.Asset = phase
	store.mu.Unlock()
}

func (store *Store) SetText(text string) {
	store.mu.Lock()
	store.state.Text = text
	store.mu.Unlock()
}

func (store *Store) UpdateSurface(surface SurfaceInfo) {
	store.mu.Lock()
	store.state.Surface = surface
	store.mu.Unlock()
}

func (store *Store) SetRedraws(n int) {
	store.mu.Lock()
	store.state.Redraws = n
	store.mu.Unlock()
}

func (store *Store) UpdateExport(export ExportInfo) {
	store.mu.Lock()
	store.state.Export = export
	store.mu.Unlock()
}
