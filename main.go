package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"memoryscramble/internal/board"
	"memoryscramble/internal/boardfile"
	"memoryscramble/internal/boardreg"
	"memoryscramble/internal/config"
	"memoryscramble/internal/httpapi"
	"memoryscramble/internal/loghandler"
	"memoryscramble/internal/scheduler"
)

func main() {
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	cfg := config.Load()
	slog.Info("configuration loaded", "tag", "main",
		"addr", cfg.Addr, "board_rows", cfg.BoardRows, "board_cols", cfg.BoardCols,
		"reset_interval_sec", cfg.ResetIntervalSec, "keep_alive_ping_sec", cfg.KeepAlivePingSec)

	reg := boardreg.New()
	roomID, b := startingBoard(cfg, reg)
	slog.Info("board ready", "tag", "main", "room", roomID, "rows", b.Rows(), "cols", b.Cols())

	handler := httpapi.NewHandler(reg, cfg)

	done := make(chan struct{})
	defer close(done)

	if cfg.ResetIntervalSec > 0 {
		go scheduler.PeriodicReset(b, time.Duration(cfg.ResetIntervalSec)*time.Second, done)
	}
	if cfg.KeepAlivePingSec > 0 {
		go scheduler.KeepAlivePing(handler.HubFor(roomID), time.Duration(cfg.KeepAlivePingSec)*time.Second, done)
	}

	slog.Info("listening", "tag", "main", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler.Mux()); err != nil {
		slog.Error("server stopped", "tag", "main", "err", err)
		os.Exit(1)
	}
}

// startingBoard loads a board from cfg.BoardFile if configured, otherwise
// generates a random pseudo-pairs deck sized by cfg.BoardRows/BoardCols,
// and registers it under a freshly minted room id.
func startingBoard(cfg *config.Config, reg *boardreg.Registry) (roomID string, b *board.Board) {
	if cfg.BoardFile != "" {
		rows, cols, tokens, err := boardfile.ParseFile(cfg.BoardFile)
		if err != nil {
			slog.Error("failed to load board file, falling back to a generated board", "tag", "main", "file", cfg.BoardFile, "err", err)
		} else {
			return reg.Create(rows, cols, tokens)
		}
	}
	tokens := boardfile.Generate(cfg.BoardRows, cfg.BoardCols)
	return reg.Create(cfg.BoardRows, cfg.BoardCols, tokens)
}
