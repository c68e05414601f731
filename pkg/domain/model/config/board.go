package config

// BoardConfig holds board-level application settings loaded from the
// configuration file.
type BoardConfig struct {
	// DefaultColumns are the column titles seeded onto every newly created
	// board, in left-to-right order.
	DefaultColumns []string

	// MessageHistoryLimit caps how many conversation messages the history
	// endpoint returns per request.
	MessageHistoryLimit int
}

// DefaultBoardConfig returns the settings used when no configuration file is
// provided.
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		DefaultColumns:      []string{"To Do", "In Progress", "Done"},
		MessageHistoryLimit: 50,
	}
}
