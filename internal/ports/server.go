package ports

// Server is a long-running listener owned by the daemon
type Server interface {
	// Start begins serving in the background
	Start() error

	// Stop stops the server
	Stop() error
}
