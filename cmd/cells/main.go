package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"

	"github.com/cellscript/cellscript/sheet"
)

const version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "cells:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cells",
		Short:         "Evaluate spreadsheet formulas from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEvalCommand())
	root.AddCommand(newShiftCommand())
	root.AddCommand(newFunctionsCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newGridCommand())
	return root
}

// openSheet loads a sheet file, optionally decoding a legacy single
// byte encoding first.
func openSheet(path, encoding string) (*sheet.Sheet, error) {
	if encoding == "" {
		return sheet.Load(path)
	}

	cm, err := charmapByName(encoding)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()
	return sheet.Read(cm.NewDecoder().Reader(f), filepath.Ext(path))
}

func charmapByName(name string) (*charmap.Charmap, error) {
	switch strings.ToLower(name) {
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q (latin1, windows-1252)", name)
}
