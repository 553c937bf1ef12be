package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/cellscript/cellscript/cells"
	"github.com/cellscript/cellscript/sheet"
)

var (
	stampStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	watchErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

func newWatchCommand() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "watch <sheet>",
		Short: "Re-evaluate a sheet whenever its file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], encoding)
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "", "decode legacy input (latin1, windows-1252)")
	return cmd
}

// reloadingGrid lets one engine outlive sheet reloads: the engine
// keeps reading through it while the sheet behind it is swapped.
type reloadingGrid struct {
	sheet *sheet.Sheet
}

func (g *reloadingGrid) RawContent(addr cells.Address) string {
	return g.sheet.RawContent(addr)
}

func runWatch(cmd *cobra.Command, path, encoding string) error {
	out := cmd.OutOrStdout()

	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve sheet path: %w", err)
	}

	s, err := openSheet(path, encoding)
	if err != nil {
		return err
	}
	grid := &reloadingGrid{sheet: s}
	engine := cells.MustNewEngine(cells.Config{Grid: grid})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors that write via rename break a
	// direct file watch. Arm the watch before the first print so a
	// change landing right after the load is not missed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	fmt.Fprintln(out, stampStyle.Render(time.Now().Format("15:04:05"))+" "+path)
	printSheet(out, grid.sheet, engine)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldReload(event, path) {
				continue
			}
			next, err := openSheet(path, encoding)
			if err != nil {
				fmt.Fprintln(out, watchErrorStyle.Render(fmt.Sprintf("reload failed: %v", err)))
				continue
			}
			grid.sheet = next
			engine.InvalidateCache()
			fmt.Fprintln(out, "\n"+stampStyle.Render(time.Now().Format("15:04:05"))+" "+path)
			printSheet(out, grid.sheet, engine)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(out, watchErrorStyle.Render(fmt.Sprintf("watch error: %v", err)))
		}
	}
}

// shouldReload filters directory events down to content changes of
// the watched file.
func shouldReload(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

func printSheet(w io.Writer, s *sheet.Sheet, engine *cells.Engine) {
	for _, addr := range s.Addresses() {
		fmt.Fprintf(w, "%s\t%s\n", addr, engine.Evaluate(addr).Display())
	}
}
