// Command vtcat feeds a byte stream through a vtcore.Terminal and
// prints either a JSON snapshot or a rendered screen. It exists as the
// golden-test harness and manual debugging aid described by
// SPEC_FULL.md §4.6: a thin consumer exercising the Terminal/Observer/
// Snapshot boundary like any external collaborator would.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/vtcore/vtcore"
)

// replayManifest describes a recorded session to feed through a
// Terminal: geometry plus one or more chunks of raw bytes, read from a
// TOML file rather than a flat byte stream so a single manifest can
// carry several distinct chunks (simulating the network writes that
// produced them) alongside the dimensions they were captured at.
type replayManifest struct {
	Rows   int      `toml:"rows"`
	Cols   int      `toml:"cols"`
	Chunks []string `toml:"chunks"`
}

func main() {
	var (
		manifestPath = flag.String("manifest", "", "TOML replay manifest (chunks of input + geometry)")
		render       = flag.String("render", "snapshot", "output mode: snapshot (JSON) or screen (plain text)")
		rows         = flag.Int("rows", 0, "terminal rows (0 = autodetect from stdout, falling back to 24)")
		cols         = flag.Int("cols", 0, "terminal cols (0 = autodetect from stdout, falling back to 80)")
		verbose      = flag.Bool("verbose", false, "log each fed chunk and the detected geometry at debug level")
	)
	flag.Parse()

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	r, c := *rows, *cols
	if r <= 0 || c <= 0 {
		if detectedCols, detectedRows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if r <= 0 {
				r = detectedRows
			}
			if c <= 0 {
				c = detectedCols
			}
		} else {
			log.Debug("tty size autodetect failed, falling back to defaults", "err", err)
		}
	}
	log.Debug("geometry resolved", "rows", r, "cols", c)

	runID := uuid.New().String()
	log.Debug("run started", "run_id", runID)

	emu := vtcore.New(vtcore.WithSize(r, c))

	if *manifestPath != "" {
		if err := feedManifest(emu, *manifestPath, log); err != nil {
			log.Error("feeding manifest", "path", *manifestPath, "err", err)
			os.Exit(1)
		}
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Error("reading stdin", "err", err)
			os.Exit(1)
		}
		log.Debug("fed stdin chunk", "bytes", len(data))
		emu.Feed(data)
	}

	switch *render {
	case "snapshot":
		printSnapshot(emu, runID)
	case "screen":
		printScreen(emu)
	default:
		log.Error("unknown render mode", "render", *render)
		os.Exit(1)
	}
}

func feedManifest(t *vtcore.Terminal, path string, log *slog.Logger) error {
	var m replayManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Rows > 0 && m.Cols > 0 {
		log.Debug("manifest geometry override", "rows", m.Rows, "cols", m.Cols)
		if err := t.Resize(m.Rows, m.Cols); err != nil {
			return fmt.Errorf("applying manifest geometry: %w", err)
		}
	}
	for i, chunk := range m.Chunks {
		log.Debug("feeding manifest chunk", "index", i, "bytes", len(chunk))
		t.Feed([]byte(chunk))
	}
	return nil
}

// snapshotEnvelope wraps a Snapshot with a per-invocation run id so
// multiple vtcat captures of the same manifest can be told apart in a
// batch of golden-test fixtures.
type snapshotEnvelope struct {
	RunID    string          `json:"run_id"`
	Snapshot vtcore.Snapshot `json:"snapshot"`
}

func printSnapshot(t *vtcore.Terminal, runID string) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(snapshotEnvelope{RunID: runID, Snapshot: t.Snapshot()})
}

func printScreen(t *vtcore.Terminal) {
	snap := t.Snapshot()
	for _, line := range snap.Lines {
		for _, cell := range line.Cells {
			if cell.Text == "" {
				fmt.Print(" ")
				continue
			}
			fmt.Print(cell.Text)
		}
		fmt.Println()
	}
}
