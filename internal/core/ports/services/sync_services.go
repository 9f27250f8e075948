package services

// SyncSvcFacade reacts to remote-change and mode-change events by triggering a
// refresh callback registered by the query layer. Remote-change bursts are
// debounced into a single refresh; mode changes refresh immediately.
type SyncSvcFacade interface {
	// RegisterRefresh sets the callback invoked when the active backend's
	// data should be re-read. Must be called before any signal arrives.
	RegisterRefresh(fn func())

	// Close cancels any pending debounced refresh.
	Close()
}
