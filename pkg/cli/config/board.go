package config

import (
	"os"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/deckhand-app/deckhand/pkg/domain/model"
	domainConfig "github.com/deckhand-app/deckhand/pkg/domain/model/config"
)

// Board holds CLI flags for the board template configuration file
type Board struct {
	path string
}

// BoardFile is the TOML shape of the board template file
type BoardFile struct {
	Board BoardSection `toml:"board"`
}

// BoardSection configures how new boards are seeded and how much history the
// message endpoint serves.
type BoardSection struct {
	DefaultColumns      []string `toml:"default_columns"`
	MessageHistoryLimit int      `toml:"message_history_limit"`
}

// Flags returns CLI flags for board configuration
func (b *Board) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "board-config",
			Usage:       "Path to board template TOML file (optional)",
			Sources:     cli.EnvVars("DECKHAND_BOARD_CONFIG"),
			Destination: &b.path,
		},
	}
}

// Path returns the configured file path
func (b *Board) Path() string {
	return b.path
}

// Validate checks the loaded file for usable values
func (f *BoardFile) Validate() error {
	for _, title := range f.Board.DefaultColumns {
		if title == "" {
			return goerr.Wrap(ErrInvalidConfig, "default column title must not be empty")
		}
		if utf8.RuneCountInString(title) > model.MaxColumnTitleLength {
			return goerr.Wrap(ErrInvalidConfig, "default column title exceeds length bound",
				goerr.V(ColumnTitleKey, title), goerr.V("max", model.MaxColumnTitleLength))
		}
	}
	if f.Board.MessageHistoryLimit < 0 {
		return goerr.Wrap(ErrInvalidConfig, "message history limit must not be negative",
			goerr.V("limit", f.Board.MessageHistoryLimit))
	}
	return nil
}

// Configure loads and validates the board template file. Without a path the
// built-in defaults are returned.
func (b *Board) Configure() (*domainConfig.BoardConfig, error) {
	cfg := domainConfig.DefaultBoardConfig()
	if b.path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "board config file does not exist",
				goerr.V(ConfigPathKey, b.path))
		}
		return nil, goerr.Wrap(err, "failed to read board config", goerr.V(ConfigPathKey, b.path))
	}

	var file BoardFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse board config", goerr.V(ConfigPathKey, b.path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "board config validation failed", goerr.V(ConfigPathKey, b.path))
	}

	if len(file.Board.DefaultColumns) > 0 {
		cfg.DefaultColumns = file.Board.DefaultColumns
	}
	if file.Board.MessageHistoryLimit > 0 {
		cfg.MessageHistoryLimit = file.Board.MessageHistoryLimit
	}

	return cfg, nil
}
