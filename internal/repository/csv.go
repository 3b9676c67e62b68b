package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// row gives by-name access to one CSV record so column order on disk does
// not matter. Missing columns read as "".
type row struct {
	index  map[string]int
	fields []string
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// csvTable is one flat file with a header row. Reads load the whole file;
// writes rewrite it through a temp file and rename. There is no locking:
// concurrent writers race and the last rename wins.
type csvTable[T any] struct {
	path   string
	header []string
	decode func(row) (T, error)
	encode func(T) []string
}

func (t *csvTable[T]) readAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", t.path, err)
	}
	index := make(map[string]int, len(head))
	for i, col := range head {
		index[col] = i
	}

	records := make([]T, 0)
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
		}
		rec, err := t.decode(row{index: index, fields: fields})
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(t.path), line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (t *csvTable[T]) writeAll(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(t.encode(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s: %w", t.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", t.path, err)
	}
	return nil
}

// recordRepository implements RecordRepository over an id-keyed table
type recordRepository[T any] struct {
	table *csvTable[T]
	idOf  func(*T) string
}

func (r *recordRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.table.readAll(ctx)
}

func (r *recordRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	records, err := r.table.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if r.idOf(&records[i]) == id {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *recordRepository[T]) Create(ctx context.Context, rec *T) (*T, error) {
	records, err := r.table.readAll(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, *rec)
	if err := r.table.writeAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return rec, nil
}

func (r *recordRepository[T]) Update(ctx context.Context, rec *T) (*T, error) {
	records, err := r.table.readAll(ctx)
	if err != nil {
		return nil, err
	}
	id := r.idOf(rec)
	found := false
	for i := range records {
		if r.idOf(&records[i]) == id {
			records[i] = *rec
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	if err := r.table.writeAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return rec, nil
}

func (r *recordRepository[T]) Delete(ctx context.Context, id string) error {
	records, err := r.table.readAll(ctx)
	if err != nil {
		return err
	}
	kept := records[:0]
	for i := range records {
		if r.idOf(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}
	if len(kept) == len(records) {
		return ErrNotFound
	}
	if err := r.table.writeAll(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
