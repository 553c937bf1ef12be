package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cellscript/cellscript/cells"
)

// Load reads a sheet file, picking the format by extension: .yaml/.yml
// or .csv.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Ext(path))
}

// Read decodes sheet data in the format named by ext.
func Read(r io.Reader, ext string) (*Sheet, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ReadYAML(r)
	case ".csv":
		return ReadCSV(r)
	}
	return nil, fmt.Errorf("sheet: unsupported file extension %q", ext)
}

// Save writes the sheet to path in the format named by its extension.
func (s *Sheet) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sheet: %w", err)
	}
	if err := s.Write(f, filepath.Ext(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the sheet in the format named by ext.
func (s *Sheet) Write(w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return s.WriteYAML(w)
	case ".csv":
		return s.WriteCSV(w)
	}
	return fmt.Errorf("sheet: unsupported file extension %q", ext)
}

// ReadYAML decodes either the document form
//
//	title: Budget
//	cells:
//	  A1: "100"
//	  B1: =A1*2
//
// or the shorthand form, a bare mapping of address to content. Cell
// values keep their literal text whatever YAML scalar type they would
// decode to, so an unquoted 42 stays the text "42".
func ReadYAML(r io.Reader) (*Sheet, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, fmt.Errorf("sheet: decode yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return New(), nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("sheet: yaml root is not a mapping")
	}

	s := New()

	// A "cells" key marks the document form; addresses never spell it.
	if body := mappingValue(root, "cells"); body != nil {
		if title := mappingValue(root, "title"); title != nil {
			s.Title = title.Value
		}
		if err := readCellMapping(s, body); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := readCellMapping(s, root); err != nil {
		return nil, err
	}
	return s, nil
}

func readCellMapping(s *Sheet, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("sheet: cells is not a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("sheet: %s: cell content is not a scalar", key.Value)
		}
		if err := s.Set(key.Value, value.Value); err != nil {
			return fmt.Errorf("sheet: %w", err)
		}
	}
	return nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// WriteYAML emits the document form with cells in row-major order.
// Content is tagged as a string so numeric-looking text round-trips
// unchanged.
func (s *Sheet) WriteYAML(w io.Writer) error {
	body := &yaml.Node{Kind: yaml.MappingNode}
	for _, addr := range s.Addresses() {
		body.Content = append(body.Content,
			strNode(addr.String()),
			strNode(s.RawContent(addr)),
		)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if s.Title != "" {
		root.Content = append(root.Content, strNode("title"), strNode(s.Title))
	}
	root.Content = append(root.Content, strNode("cells"), body)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		enc.Close()
		return fmt.Errorf("sheet: encode yaml: %w", err)
	}
	return enc.Close()
}

func strNode(text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text}
}

// ReadCSV maps row/column positions to addresses: the first field of
// the first record lands in A1. Empty fields stay unset cells. Rows
// may have ragged lengths.
func ReadCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	s := New()
	for row := 0; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet: read csv: %w", err)
		}
		for col, field := range record {
			if field == "" {
				continue
			}
			s.SetAddr(cells.Address{Col: col, Row: row}, field)
		}
	}
	return s, nil
}

// WriteCSV writes the dense rectangle from A1 to the bottom-right set
// cell; unset cells become empty fields. An empty sheet writes
// nothing.
func (s *Sheet) WriteCSV(w io.Writer) error {
	bounds, ok := s.Bounds()
	if !ok {
		return nil
	}

	cw := csv.NewWriter(w)
	for row := 0; row <= bounds.End.Row; row++ {
		record := make([]string, bounds.End.Col+1)
		for col := range record {
			record[col] = s.RawContent(cells.Address{Col: col, Row: row})
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("sheet: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("sheet: write csv: %w", err)
	}
	return nil
}
