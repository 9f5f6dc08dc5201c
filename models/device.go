package models

import (
	"sort"
	"strings"
)

// DeviceColumns is the column schema of the device record table, in the
// order the backing CSV file stores them. All fields are untyped strings
// at rest.
var DeviceColumns = []string{
	"id",
	"server",
	"parent_fleet",
	"fleet_number",
	"registration",
	"status",
	"comments",
	"date_created",
	"priority",
	"assigned_to",
}

// CameraStatuses is the repair-status enumeration used by the camera
// dashboard variant.
var CameraStatuses = []string{
	"New",
	"Inspected, all good",
	"Inspected, Awaiting PO approval",
	"PO approved to be repaired",
	"Repaired, all good",
}

// TaskStatuses is the repair-status enumeration used by the tasks
// dashboard variant.
var TaskStatuses = []string{
	"New",
	"Incomplete",
	"waiting materials",
	"Complete",
}

// Row is a single device record: a mapping from column name to the string
// value stored in that cell. Imported tables may carry columns outside
// [DeviceColumns]; the row keeps whatever the backing store held.
type Row map[string]string

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of device records together with its column
// schema. Column order is significant for serialization round-trips;
// row order is significant for stable sorting.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable returns an empty table with the default device column schema.
func NewTable() Table {
	return Table{Columns: append([]string(nil), DeviceColumns...)}
}

// Clone returns a deep copy of the table. Mutating the copy never affects
// the receiver.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

// FilterSpec describes independent, composable record filters. A zero
// field disables that filter, so the zero FilterSpec is a no-op.
type FilterSpec struct {
	// Status matches rows whose status column equals the value exactly.
	Status string

	// ParentFleet matches rows whose parent_fleet column contains the
	// value, case-insensitively.
	ParentFleet string

	// Priority matches rows whose priority column equals the value
	// exactly, as stored (string comparison).
	Priority string
}

// IsZero reports whether no filter is set.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// Filter returns a new table containing the rows matching every set filter
// in spec, in their original order. The receiver is not mutated.
func (t Table) Filter(spec FilterSpec) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	fleet := strings.ToLower(spec.ParentFleet)

	for _, row := range t.Rows {
		if spec.Status != "" && row["status"] != spec.Status {
			continue
		}
		if fleet != "" && !strings.Contains(strings.ToLower(row["parent_fleet"]), fleet) {
			continue
		}
		if spec.Priority != "" && row["priority"] != spec.Priority {
			continue
		}
		out.Rows = append(out.Rows, row.Clone())
	}

	return out
}

// SortByPriority returns a new table ordered by the numeric coercion of the
// priority column, ascending. Rows whose priority does not coerce to an
// integer are ordered after all rows with a valid priority. The sort is
// stable: ties and uncoercible rows keep their original relative order.
func (t Table) SortByPriority() Table {
	out := t.Clone()

	sort.SliceStable(out.Rows, func(i, j int) bool {
		pi, iok := CoercePriority(out.Rows[i]["priority"])
		pj, jok := CoercePriority(out.Rows[j]["priority"])
		if iok != jok {
			return iok // valid priorities before invalid ones
		}
		if !iok {
			return false
		}
		return pi < pj
	})

	return out
}

// Update returns a new table in which every field named in fields is
// replaced on every row whose id column equals id. When no row matches,
// the table is returned unchanged: an absent target is a silent no-op,
// not an error.
func (t Table) Update(id string, fields map[string]string) Table {
	out := t.Clone()
	for _, row := range out.Rows {
		if row["id"] != id {
			continue
		}
		for name, value := range fields {
			row[name] = value
		}
	}
	return out
}

// Delete returns a new table without any row whose id column equals id.
// When no row matches, the table is returned unchanged.
func (t Table) Delete(id string) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if row["id"] == id {
			continue
		}
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

// Append returns a new table with row added after the existing rows.
func (t Table) Append(row Row) Table {
	out := t.Clone()
	out.Rows = append(out.Rows, row.Clone())
	return out
}

// StatusCounts returns the number of rows per status value.
func (t Table) StatusCounts() map[string]int {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		counts[row["status"]]++
	}
	return counts
}
