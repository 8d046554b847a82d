// Package artifact reads and writes the plain-text vectors and matrices
// exchanged with training tools: one value per line, formatted with six
// decimals.
package artifact

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-prosody/dsp/cwt"
)

// ReadVector parses whitespace-separated numbers from r. Blank lines and
// lines starting with '#' are skipped.
func ReadVector(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not a number", cwt.ErrInput, line, field)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no values", cwt.ErrInput)
	}
	return out, nil
}

// ReadVectorFile reads a vector from the file at path.
func ReadVectorFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := ReadVector(f)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", path, err)
	}
	return v, nil
}

// ReadRowsFile reads a persisted samples x rows matrix (the transposed layout
// written by the analysis) and returns it as rows x samples.
// The value count must be a multiple of rows.
func ReadRowsFile(path string, rows int) (cwt.Matrix, error) {
	flat, err := ReadVectorFile(path)
	if err != nil {
		return nil, err
	}
	m, err := cwt.Reshape(flat, rows)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", path, err)
	}
	return m.Transpose(), nil
}

// WriteVector writes one value per line.
func WriteVector(w io.Writer, v []float64) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, x := range v {
		buf = strconv.AppendFloat(buf[:0], x, 'f', 6, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRows writes m transposed (samples x rows), flattened one value per line.
func WriteRows(w io.Writer, m cwt.Matrix) error {
	return WriteVector(w, m.Transpose().Flatten())
}

// Batch collects files and writes them all or none.
type Batch struct {
	files []pending
}

type pending struct {
	path string
	data []byte
}

// Write queues the output of write for path.
func (b *Batch) Write(path string, write func(io.Writer) error) error {
	return b.add(path, write)
}

// Vector queues v for path.
func (b *Batch) Vector(path string, v []float64) error {
	return b.add(path, func(w io.Writer) error { return WriteVector(w, v) })
}

// Rows queues m, transposed, for path.
func (b *Batch) Rows(path string, m cwt.Matrix) error {
	return b.add(path, func(w io.Writer) error { return WriteRows(w, m) })
}

func (b *Batch) add(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	b.files = append(b.files, pending{path: path, data: buf.Bytes()})
	return nil
}

// Len returns the number of queued files.
func (b *Batch) Len() int { return len(b.files) }

// Paths returns the queued destination paths in order.
func (b *Batch) Paths() []string {
	out := make([]string, len(b.files))
	for i, f := range b.files {
		out[i] = f.path
	}
	return out
}

// rename is swapped in tests to simulate failing file systems.
var rename = os.Rename

// Commit writes every queued file to a temporary sibling and renames them
// into place once all writes succeeded. Existing destinations are moved
// aside first; if any step fails, files already placed are removed, the
// previous destinations are restored and the temporaries are deleted.
func (b *Batch) Commit() error {
	temps := make([]string, 0, len(b.files))
	backups := make(map[int]string)
	placed := 0

	rollback := func() {
		for i := 0; i < placed; i++ {
			_ = os.Remove(b.files[i].path)
		}
		for i, backup := range backups {
			_ = rename(backup, b.files[i].path)
		}
		for _, p := range temps[placed:] {
			_ = os.Remove(p)
		}
	}

	for _, f := range b.files {
		tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
		if err != nil {
			rollback()
			return fmt.Errorf("artifact: stage %s: %w", f.path, err)
		}
		temps = append(temps, tmp.Name())
		_, werr := tmp.Write(f.data)
		cerr := tmp.Close()
		if werr != nil || cerr != nil {
			rollback()
			return fmt.Errorf("artifact: write %s: %w", f.path, firstErr(werr, cerr))
		}
	}

	for i, f := range b.files {
		if _, err := os.Lstat(f.path); err != nil {
			continue
		}
		backup := temps[i] + ".orig"
		if err := rename(f.path, backup); err != nil {
			rollback()
			return fmt.Errorf("artifact: move aside %s: %w", f.path, err)
		}
		backups[i] = backup
	}

	for i, f := range b.files {
		if err := rename(temps[i], f.path); err != nil {
			rollback()
			return fmt.Errorf("artifact: commit %s: %w", f.path, err)
		}
		placed++
	}

	for _, backup := range backups {
		_ = os.Remove(backup)
	}
	b.files = nil
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
