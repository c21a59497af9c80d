// Package terms compares flat term lists read from CSV files.
package terms

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/untoldecay/modelscore/internal/normalize"
	"github.com/untoldecay/modelscore/internal/types"
)

// DefaultColumn is the header looked up when no column is configured.
const DefaultColumn = "term"

// ErrNoTermColumn is returned when the header row has no term column.
var ErrNoTermColumn = errors.New("term column not found")

// ColumnError reports a missing term column together with the columns that
// were available.
type ColumnError struct {
	Source    string
	Column    string
	Available []string
}

func (e *ColumnError) Error() string {
	src := ""
	if e.Source != "" {
		src = " in " + e.Source
	}
	return fmt.Sprintf("could not find %q column%s; available columns: [%s]",
		e.Column, src, strings.Join(e.Available, ", "))
}

func (e *ColumnError) Unwrap() error { return ErrNoTermColumn }

// Vocabulary maps canonical term keys to the first spelling seen for them.
type Vocabulary struct {
	keys     types.Set[string]
	original map[string]string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{keys: types.NewSet[string](), original: map[string]string{}}
}

// Add records term. It reports false when the term has no canonical key.
// A later spelling of an existing key is ignored.
func (v *Vocabulary) Add(term string) bool {
	term = strings.TrimSpace(term)
	key := normalize.Identifier(term)
	if key == "" {
		return false
	}
	if !v.keys.Has(key) {
		v.keys.Add(key)
		v.original[key] = term
	}
	return true
}

// Keys returns the canonical key set. Callers must not modify it.
func (v *Vocabulary) Keys() types.Set[string] { return v.keys }

// Len returns the number of distinct canonical terms.
func (v *Vocabulary) Len() int { return v.keys.Len() }

// Original returns the recorded spelling of key, or key itself when unknown.
func (v *Vocabulary) Original(key string) string {
	if s, ok := v.original[key]; ok {
		return s
	}
	return key
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a vocabulary from the named column of a CSV stream with a
// header row. The column is matched case-insensitively after trimming; an
// empty column means DefaultColumn.
func ReadCSV(r io.Reader, column string) (*Vocabulary, error) {
	if column == "" {
		column = DefaultColumn
	}
	want := strings.ToLower(strings.TrimSpace(column))

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ColumnError{Column: column}
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToValidUTF8(header[i], "�")
	}

	idx := -1
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) == want {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &ColumnError{Column: column, Available: header}
	}

	vocab := NewVocabulary()
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if idx >= len(record) {
			continue
		}
		vocab.Add(strings.ToValidUTF8(record[idx], "�"))
	}
	return vocab, nil
}

// ReadFile reads a vocabulary from a CSV file.
func ReadFile(path, column string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	vocab, err := ReadCSV(f, column)
	if err != nil {
		var colErr *ColumnError
		if errors.As(err, &colErr) {
			colErr.Source = path
			return nil, colErr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vocab, nil
}
