package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/models"
	"golang.org/x/text/encoding/charmap"
)

// recordFile persists the device record table in a CSV file with a header
// row. The whole table is read and rewritten on every operation; there is
// no partial update at this layer.
type recordFile struct {
	path   string
	logger *logger.Logger
}

// NewRecordFile constructs a [RecordRepository] backed by the CSV file at
// path. The file does not have to exist yet; the first Load bootstraps it
// with the default empty schema.
func NewRecordFile(path string, logger *logger.Logger) RecordRepository {
	logger.Debug().Str("path", path).Msg("record repository created")
	return &recordFile{
		path:   path,
		logger: logger,
	}
}

// Load reads the entire backing file into a [models.Table].
//
// If the file does not exist it is initialized with the default empty
// schema and persisted immediately, so repeated loads are idempotent and
// never fail due to absence. A file that is not valid UTF-8 is transcoded
// from latin-1 before parsing; content that still fails to parse surfaces
// [ErrMalformedStorage].
func (r *recordFile) Load(ctx context.Context) (models.Table, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		table := models.NewTable()
		if saveErr := r.Save(ctx, table); saveErr != nil {
			return models.Table{}, saveErr
		}
		return table, nil
	}
	if err != nil {
		r.logger.Err(err).Str("path", r.path).Msg("error reading record file")
		return models.Table{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// legacy exports were written as latin-1; transcode before parsing
	if !utf8.Valid(data) {
		if decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data); decErr == nil {
			r.logger.Warn().Str("path", r.path).Msg("record file decoded via latin-1 fallback")
			data = decoded
		}
	}

	table, err := DecodeCSV(data)
	if err != nil {
		r.logger.Err(err).Str("path", r.path).Msg("error parsing record file")
		return models.Table{}, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	return table, nil
}

// Save serializes table and replaces the backing file. The bytes are
// written to a temporary file in the same directory and renamed over the
// target, so a crash mid-write never leaves the file truncated.
func (r *recordFile) Save(ctx context.Context, table models.Table) error {
	data, err := EncodeCSV(table)
	if err != nil {
		return fmt.Errorf("encode record table: %w", err)
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		r.logger.Err(err).Str("path", r.path).Msg("error writing record file")
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

// DecodeCSV parses CSV bytes with a required header row into a
// [models.Table]. Rows shorter than the header are padded with empty
// strings; extra cells beyond the header are dropped. All values stay
// strings.
func DecodeCSV(data []byte) (models.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return models.Table{}, fmt.Errorf("parse csv: missing header row")
	}

	table := models.Table{Columns: append([]string(nil), records[0]...)}
	for _, record := range records[1:] {
		row := make(models.Row, len(table.Columns))
		for i, column := range table.Columns {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// EncodeCSV serializes a [models.Table] to CSV bytes: one header row with
// the table's columns, then one row per record in column order. The output
// round-trips through [DecodeCSV].
func EncodeCSV(table models.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(table.Columns); err != nil {
		return nil, err
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, column := range table.Columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over the target. Parent directories are created as needed.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
