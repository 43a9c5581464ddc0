// lawchat is a terminal client for a legal research chatbot backend.
//
// With no arguments it starts the full-screen TUI; with a subcommand it
// runs the one-shot CLI surface (ask, chat, login, history, ...).
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/archive"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/cli"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/recorder"
	"github.com/kiransrisai/Legal-chatbot/internal/registry"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
	"github.com/kiransrisai/Legal-chatbot/internal/speech"
	"github.com/kiransrisai/Legal-chatbot/internal/turn"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/chat"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// version is stamped at build time with -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lawchat: bad configuration:", err)
		return 1
	}
	styles.ApplyTheme(cfg.UI.Theme)

	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lawchat:", err)
		return 1
	}
	if err := config.EnsureDir(); err != nil {
		fmt.Fprintln(os.Stderr, "lawchat:", err)
		return 1
	}

	store := session.NewStore(dir)
	client := api.NewClient(&api.ClientConfig{
		BaseURL:       cfg.Backend.URL,
		Timeout:       time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		UploadTimeout: time.Duration(cfg.Backend.UploadTimeoutSecs) * time.Second,
	}, store)
	gate := auth.NewGate(store, client)

	arc := openArchive(cfg)
	if arc != nil {
		defer arc.Close()
	}

	if len(os.Args) > 1 {
		app := &cli.App{
			Config:  cfg,
			Client:  client,
			Store:   store,
			Gate:    gate,
			Archive: arc,
			Version: version,
		}
		return app.Run(os.Args[1:])
	}

	return runTUI(cfg, client, store, gate, arc)
}

// openArchive opens the local turn archive and prunes expired turns. A
// broken archive never blocks the client; it is logged and disabled.
func openArchive(cfg *config.Config) *archive.Archive {
	if !cfg.Archive.Enabled {
		return nil
	}
	path, err := cfg.ArchivePath()
	if err != nil {
		log.Printf("archive disabled: %v", err)
		return nil
	}
	arc, err := archive.Open(path)
	if err != nil {
		log.Printf("archive disabled: %v", err)
		return nil
	}
	if cfg.Archive.RetentionDays > 0 {
		retention := time.Duration(cfg.Archive.RetentionDays) * 24 * time.Hour
		if err := arc.Prune(retention); err != nil {
			log.Printf("archive prune failed: %v", err)
		}
	}
	return arc
}

func runTUI(cfg *config.Config, client *api.Client, store *session.Store, gate *auth.Gate, arc *archive.Archive) int {
	// The TUI owns the terminal; stray log output would corrupt it.
	log.SetOutput(io.Discard)

	var updates <-chan *config.Config
	if path, err := config.PathTOML(); err == nil {
		if watcher, werr := config.Watch(path); werr == nil {
			updates = watcher.Updates()
			defer watcher.Close()
		}
	}

	var synth speech.Synthesizer
	if cfg.Speech.Enabled {
		if s := speech.NewSynthesizer(); s.Available() {
			synth = s
		}
	}

	deps := chat.Deps{
		Config:        cfg,
		Client:        client,
		Store:         store,
		Gate:          gate,
		Registry:      registry.New(),
		Turns:         turn.New(),
		Speech:        speech.NewController(synth),
		Recorder:      recorder.NewAdapter(recorder.NewCapture()),
		Archive:       arc,
		ConfigUpdates: updates,
	}

	program := tea.NewProgram(chat.New(deps), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "lawchat:", err)
		return 1
	}
	return 0
}
