package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/repair-desk/internal/logger"
	"github.com/MKhiriev/repair-desk/internal/store"
	"github.com/MKhiriev/repair-desk/models"
	"github.com/xuri/excelize/v2"
)

// ImportFormat names a recognized tabular upload format.
type ImportFormat string

const (
	// FormatCSV is delimited text with a header row. Export produces this
	// format and importing exported bytes round-trips the table.
	FormatCSV ImportFormat = "csv"

	// FormatXLSX is a spreadsheet workbook; the first sheet is imported
	// and every cell is read as a string.
	FormatXLSX ImportFormat = "xlsx"
)

// ExportFilename is the download filename convention for exports.
const ExportFilename = "devices_export.csv"

// DetectFormat maps an uploaded filename to its [ImportFormat] by
// extension. Anything that is not a workbook is treated as delimited text.
func DetectFormat(filename string) ImportFormat {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// recordService is the concrete implementation of [RecordService].
//
// The backing file is a process-wide shared resource with no concurrency
// control of its own, so every load-modify-save cycle runs under mu. The
// HTTP shell serves concurrent requests; without this lock concurrent
// writers would silently clobber each other (last write wins).
type recordService struct {
	records store.RecordRepository

	mu sync.Mutex

	logger *logger.Logger
}

// NewRecordService constructs a [RecordService] over the given record
// repository.
func NewRecordService(records store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		records: records,
		logger:  logger,
	}
}

// List loads the table and returns the view selected by filter, sorted by
// priority when requested. The backing store is never mutated by a read.
func (r *recordService) List(ctx context.Context, filter models.FilterSpec, sortByPriority bool) (models.Table, error) {
	table, err := r.records.Load(ctx)
	if err != nil {
		return models.Table{}, err
	}

	if !filter.IsZero() {
		table = table.Filter(filter)
	}
	if sortByPriority {
		table = table.SortByPriority()
	}

	return table, nil
}

// Add appends row to the table and persists it.
func (r *recordService) Add(ctx context.Context, row models.Row) (models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.records.Load(ctx)
	if err != nil {
		return models.Table{}, err
	}

	table = table.Append(row)
	if err := r.records.Save(ctx, table); err != nil {
		return models.Table{}, err
	}

	return table, nil
}

// Update replaces the named fields on every row whose id matches. When the
// id is non-unique all matching rows are updated; when nothing matches the
// table is saved unchanged and no error is reported.
func (r *recordService) Update(ctx context.Context, id string, fields map[string]string) (models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.records.Load(ctx)
	if err != nil {
		return models.Table{}, err
	}

	table = table.Update(id, fields)
	if err := r.records.Save(ctx, table); err != nil {
		return models.Table{}, err
	}

	return table, nil
}

// Delete removes every row whose id matches. An absent id is a silent
// no-op.
func (r *recordService) Delete(ctx context.Context, id string) (models.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.records.Load(ctx)
	if err != nil {
		return models.Table{}, err
	}

	table = table.Delete(id)
	if err := r.records.Save(ctx, table); err != nil {
		return models.Table{}, err
	}

	return table, nil
}

// ImportReplace parses uploaded bytes in the given format and wholesale
// replaces the backing store. Columns are taken as-is from the upload with
// no validation against the expected schema. On [ErrImportParse] the prior
// table is left completely untouched.
func (r *recordService) ImportReplace(ctx context.Context, data []byte, format ImportFormat) (models.Table, error) {
	table, err := parseUpload(data, format)
	if err != nil {
		r.logger.Err(err).Str("format", string(format)).Msg("import rejected")
		return models.Table{}, fmt.Errorf("%w: %v", ErrImportParse, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.records.Save(ctx, table); err != nil {
		return models.Table{}, err
	}

	r.logger.Info().Int("rows", len(table.Rows)).Msg("record table replaced by import")
	return table, nil
}

// Export serializes the current table to CSV bytes for download. The
// output round-trips through ImportReplace with [FormatCSV].
func (r *recordService) Export(ctx context.Context) ([]byte, error) {
	table, err := r.records.Load(ctx)
	if err != nil {
		return nil, err
	}

	return store.EncodeCSV(table)
}

// Summary returns the row count per status value over the whole table.
func (r *recordService) Summary(ctx context.Context) (map[string]int, error) {
	table, err := r.records.Load(ctx)
	if err != nil {
		return nil, err
	}

	return table.StatusCounts(), nil
}

func parseUpload(data []byte, format ImportFormat) (models.Table, error) {
	switch format {
	case FormatCSV:
		return store.DecodeCSV(data)
	case FormatXLSX:
		return decodeXLSX(data)
	default:
		return models.Table{}, fmt.Errorf("unrecognized format %q", format)
	}
}

// decodeXLSX reads the first sheet of a workbook into a table. The first
// row is the header; every cell is coerced to string on read, matching the
// CSV path.
func decodeXLSX(data []byte) (models.Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return models.Table{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return models.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return models.Table{}, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	table := models.Table{Columns: append([]string(nil), rows[0]...)}
	for _, cells := range rows[1:] {
		row := make(models.Row, len(table.Columns))
		for i, column := range table.Columns {
			if i < len(cells) {
				row[column] = cells[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
