package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/deckhand-app/deckhand/pkg/cli/config"
	"github.com/deckhand-app/deckhand/pkg/domain/model"
)

func writeBoardFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestBoardConfigure(t *testing.T) {
	t.Run("no path returns built-in defaults", func(t *testing.T) {
		cfg, err := config.NewBoardForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.DefaultColumns).Length(3)
		gt.Value(t, cfg.DefaultColumns[0]).Equal("To Do")
		gt.Value(t, cfg.DefaultColumns[1]).Equal("In Progress")
		gt.Value(t, cfg.DefaultColumns[2]).Equal("Done")
		gt.Number(t, cfg.MessageHistoryLimit).Equal(50)
	})

	t.Run("file overrides columns and history limit", func(t *testing.T) {
		path := writeBoardFile(t, `
[board]
default_columns = ["Backlog", "Doing", "Review", "Shipped"]
message_history_limit = 20
`)
		cfg, err := config.NewBoardForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.DefaultColumns).Length(4)
		gt.Value(t, cfg.DefaultColumns[0]).Equal("Backlog")
		gt.Value(t, cfg.DefaultColumns[3]).Equal("Shipped")
		gt.Number(t, cfg.MessageHistoryLimit).Equal(20)
	})

	t.Run("partial file keeps defaults for omitted values", func(t *testing.T) {
		path := writeBoardFile(t, `
[board]
default_columns = ["Only"]
`)
		cfg, err := config.NewBoardForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.DefaultColumns).Length(1)
		gt.Number(t, cfg.MessageHistoryLimit).Equal(50)
	})

	t.Run("missing file is a distinct error", func(t *testing.T) {
		_, err := config.NewBoardForTest("/no/such/board.toml").Configure()
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})

	t.Run("invalid TOML fails", func(t *testing.T) {
		path := writeBoardFile(t, `[board`)
		_, err := config.NewBoardForTest(path).Configure()
		gt.Value(t, err).NotNil()
	})

	t.Run("empty column title is rejected", func(t *testing.T) {
		path := writeBoardFile(t, `
[board]
default_columns = ["To Do", ""]
`)
		_, err := config.NewBoardForTest(path).Configure()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("oversized column title is rejected", func(t *testing.T) {
		long := strings.Repeat("x", model.MaxColumnTitleLength+1)
		path := writeBoardFile(t, `
[board]
default_columns = ["`+long+`"]
`)
		_, err := config.NewBoardForTest(path).Configure()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("negative history limit is rejected", func(t *testing.T) {
		path := writeBoardFile(t, `
[board]
message_history_limit = -1
`)
		_, err := config.NewBoardForTest(path).Configure()
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}
