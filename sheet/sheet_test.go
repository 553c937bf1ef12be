package sheet

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cellscript/cellscript/cells"
)

func TestSetAndRaw(t *testing.T) {
	s := New()

	require.NoError(t, s.Set("a1", "=B1*2"))
	require.NoError(t, s.Set("B1", "21"))
	require.Equal(t, 2, s.Len())

	require.Equal(t, "=B1*2", s.Raw("A1"))
	require.Equal(t, "=B1*2", s.Raw("a1"))
	require.Equal(t, "21", s.Raw("B1"))
	require.Equal(t, "", s.Raw("C1"))
	require.Equal(t, "", s.Raw("not-an-address"))

	require.Error(t, s.Set("not-an-address", "x"))

	// Empty content deletes.
	require.NoError(t, s.Set("A1", ""))
	require.Equal(t, 1, s.Len())
	require.Equal(t, "", s.Raw("A1"))
}

func TestRawContentIgnoresPins(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("B2", "7"))

	pinned := cells.Address{Col: 1, Row: 1, AbsCol: true, AbsRow: true}
	require.Equal(t, "7", s.RawContent(pinned))

	s.SetAddr(pinned, "8")
	require.Equal(t, "8", s.Raw("B2"))
	require.Equal(t, 1, s.Len())
}

func TestAddressesRowMajor(t *testing.T) {
	s := New()
	for _, ref := range []string{"B2", "A1", "C1", "A2"} {
		require.NoError(t, s.Set(ref, "x"))
	}

	var got []string
	for _, addr := range s.Addresses() {
		got = append(got, addr.String())
	}
	require.Equal(t, []string{"A1", "C1", "A2", "B2"}, got)
}

func TestBounds(t *testing.T) {
	s := New()
	_, ok := s.Bounds()
	require.False(t, ok)

	require.NoError(t, s.Set("C3", "x"))
	require.NoError(t, s.Set("B5", "y"))

	bounds, ok := s.Bounds()
	require.True(t, ok)
	require.Equal(t, "A1:C5", bounds.String())
}

func TestSheetAsGrid(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("A1", "2"))
	require.NoError(t, s.Set("A2", "3"))
	require.NoError(t, s.Set("B1", "=SUM(A1:A2)*$A$1"))

	e := cells.MustNewEngine(cells.Config{Grid: s})
	v := e.Evaluate(cells.Address{Col: 1, Row: 0})
	require.Equal(t, "10", v.Display())
}

func TestReadYAMLDocumentForm(t *testing.T) {
	const input = `title: Budget
cells:
  A1: 42
  A2: 3.5
  B1: =SUM(A1:A2)
  B2: "=A1&\"!\""
  C1: plain text
`
	s, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, "Budget", s.Title)
	require.Equal(t, 5, s.Len())
	// Unquoted scalars keep their literal text.
	require.Equal(t, "42", s.Raw("A1"))
	require.Equal(t, "3.5", s.Raw("A2"))
	require.Equal(t, "=SUM(A1:A2)", s.Raw("B1"))
	require.Equal(t, `=A1&"!"`, s.Raw("B2"))
	require.Equal(t, "plain text", s.Raw("C1"))
}

func TestReadYAMLShorthandForm(t *testing.T) {
	const input = `a1: 1
B2: =A1+1
`
	s, err := ReadYAML(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, "", s.Title)
	require.Equal(t, "1", s.Raw("A1"))
	require.Equal(t, "=A1+1", s.Raw("B2"))
}

func TestReadYAMLEmptyInput(t *testing.T) {
	s, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, s.Len())
}

func TestReadYAMLErrors(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("- a\n- b\n"))
	require.ErrorContains(t, err, "not a mapping")

	_, err = ReadYAML(strings.NewReader("cells:\n  A1:\n    nested: x\n"))
	require.ErrorContains(t, err, "not a scalar")

	_, err = ReadYAML(strings.NewReader("cells:\n  nope: x\n"))
	require.ErrorContains(t, err, "invalid cell address")
}

func TestYAMLRoundTrip(t *testing.T) {
	s := New()
	s.Title = "Quarterly"
	require.NoError(t, s.Set("A1", "42"))
	require.NoError(t, s.Set("B1", "=A1*2"))
	require.NoError(t, s.Set("A2", "note: with punctuation"))

	var buf bytes.Buffer
	require.NoError(t, s.WriteYAML(&buf))

	back, err := ReadYAML(&buf)
	require.NoError(t, err)
	require.Equal(t, s.Title, back.Title)
	require.Equal(t, s.Len(), back.Len())
	for _, addr := range s.Addresses() {
		require.Equal(t, s.RawContent(addr), back.RawContent(addr), addr.String())
	}
}

func TestReadCSV(t *testing.T) {
	const input = "1,2\n,3\nx\n"
	s, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 4, s.Len())
	require.Equal(t, "1", s.Raw("A1"))
	require.Equal(t, "2", s.Raw("B1"))
	require.Equal(t, "", s.Raw("A2"))
	require.Equal(t, "3", s.Raw("B2"))
	require.Equal(t, "x", s.Raw("A3"))
}

func TestCSVRoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.Set("A1", "1"))
	require.NoError(t, s.Set("C1", "a,b"))
	require.NoError(t, s.Set("B3", "=SUM(A1:A2)"))

	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, s.Len(), back.Len())
	for _, addr := range s.Addresses() {
		require.Equal(t, s.RawContent(addr), back.RawContent(addr), addr.String())
	}
}

func TestWriteCSVEmptySheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().WriteCSV(&buf))
	require.Equal(t, "", buf.String())
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()

	s := New()
	require.NoError(t, s.Set("A1", "1"))
	require.NoError(t, s.Set("B1", "=A1+1"))

	for _, name := range []string{"sheet.yaml", "sheet.yml", "sheet.csv"} {
		path := filepath.Join(dir, name)
		require.NoError(t, s.Save(path))

		back, err := Load(path)
		require.NoError(t, err, name)
		require.Equal(t, "1", back.Raw("A1"), name)
		require.Equal(t, "=A1+1", back.Raw("B1"), name)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	_, err := Read(strings.NewReader(""), ".txt")
	require.ErrorContains(t, err, "unsupported file extension")

	require.Error(t, New().Write(&bytes.Buffer{}, ".txt"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
