package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable returns a small three-row fixture used across the table tests.
func testTable() Table {
	return Table{
		Columns: append([]string(nil), DeviceColumns...),
		Rows: []Row{
			{"id": "1", "server": "srv-a", "parent_fleet": "Alpha", "status": "New", "priority": "2"},
			{"id": "2", "server": "srv-b", "parent_fleet": "alphaville", "status": "New", "priority": "1"},
			{"id": "3", "server": "srv-c", "parent_fleet": "Bravo", "status": "Complete", "priority": "x"},
		},
	}
}

// ids collects the id column of every row, in order.
func ids(t Table) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row["id"])
	}
	return out
}

// ─────────────────────────────────────────────
// Clone
// ─────────────────────────────────────────────

// TestTable_Clone_Independent verifies that mutating a clone never leaks
// into the original table.
func TestTable_Clone_Independent(t *testing.T) {
	original := testTable()
	clone := original.Clone()

	clone.Rows[0]["status"] = "mutated"
	clone.Columns[0] = "mutated"

	assert.Equal(t, "New", original.Rows[0]["status"])
	assert.Equal(t, "id", original.Columns[0])
}

// ─────────────────────────────────────────────
// Filter
// ─────────────────────────────────────────────

// TestTable_Filter_Zero verifies that the zero FilterSpec returns every
// row unchanged and in order.
func TestTable_Filter_Zero(t *testing.T) {
	table := testTable()

	got := table.Filter(FilterSpec{})

	require.True(t, FilterSpec{}.IsZero())
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

// TestTable_Filter_StatusExact verifies exact status matching: filtering a
// mixed table by "New" keeps only the rows whose status is literally "New".
func TestTable_Filter_StatusExact(t *testing.T) {
	table := testTable()

	got := table.Filter(FilterSpec{Status: "New"})

	assert.Equal(t, []string{"1", "2"}, ids(got))
}

// TestTable_Filter_FleetSubstringCaseInsensitive verifies that the fleet
// filter is a case-insensitive substring match.
func TestTable_Filter_FleetSubstringCaseInsensitive(t *testing.T) {
	table := testTable()

	got := table.Filter(FilterSpec{ParentFleet: "ALPHA"})

	// matches both "Alpha" and "alphaville"
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

// TestTable_Filter_Combined verifies that multiple set filters compose
// conjunctively.
func TestTable_Filter_Combined(t *testing.T) {
	table := testTable()

	got := table.Filter(FilterSpec{Status: "New", Priority: "1"})

	assert.Equal(t, []string{"2"}, ids(got))
}

// TestTable_Filter_NoMatch verifies that a filter matching nothing yields
// an empty row set, keeping the column schema.
func TestTable_Filter_NoMatch(t *testing.T) {
	table := testTable()

	got := table.Filter(FilterSpec{Status: "no-such-status"})

	assert.Empty(t, got.Rows)
	assert.Equal(t, table.Columns, got.Columns)
}

// ─────────────────────────────────────────────
// SortByPriority
// ─────────────────────────────────────────────

// TestTable_SortByPriority verifies ascending numeric ordering with
// uncoercible values last: priorities [2, 1, x] sort to ids [2, 1, 3].
func TestTable_SortByPriority(t *testing.T) {
	table := testTable()

	got := table.SortByPriority()

	assert.Equal(t, []string{"2", "1", "3"}, ids(got))
	// receiver untouched
	assert.Equal(t, []string{"1", "2", "3"}, ids(table))
}

// TestTable_SortByPriority_Stable verifies that ties and uncoercible rows
// keep their original relative order.
func TestTable_SortByPriority_Stable(t *testing.T) {
	table := Table{
		Columns: DeviceColumns,
		Rows: []Row{
			{"id": "a", "priority": "1"},
			{"id": "b", "priority": ""},
			{"id": "c", "priority": "1"},
			{"id": "d", "priority": "oops"},
		},
	}

	got := table.SortByPriority()

	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(got))
}

// TestTable_SortByPriority_WhitespaceCoerces verifies that values with
// surrounding whitespace still coerce and participate in the ordering.
func TestTable_SortByPriority_WhitespaceCoerces(t *testing.T) {
	table := Table{
		Columns: DeviceColumns,
		Rows: []Row{
			{"id": "a", "priority": " 3 "},
			{"id": "b", "priority": "2"},
		},
	}

	got := table.SortByPriority()

	assert.Equal(t, []string{"b", "a"}, ids(got))
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

// TestTable_Update verifies field replacement on the matching row.
func TestTable_Update(t *testing.T) {
	table := testTable()

	got := table.Update("1", map[string]string{"status": "Repaired, all good", "priority": "3"})

	assert.Equal(t, "Repaired, all good", got.Rows[0]["status"])
	assert.Equal(t, "3", got.Rows[0]["priority"])
	// untouched fields survive
	assert.Equal(t, "srv-a", got.Rows[0]["server"])
	// other rows untouched
	assert.Equal(t, "New", got.Rows[1]["status"])
	// receiver untouched
	assert.Equal(t, "New", table.Rows[0]["status"])
}

// TestTable_Update_AllMatchingRows verifies that a duplicated id updates
// every matching row.
func TestTable_Update_AllMatchingRows(t *testing.T) {
	table := Table{
		Columns: DeviceColumns,
		Rows: []Row{
			{"id": "7", "status": "New"},
			{"id": "7", "status": "Incomplete"},
			{"id": "8", "status": "New"},
		},
	}

	got := table.Update("7", map[string]string{"status": "Complete"})

	assert.Equal(t, "Complete", got.Rows[0]["status"])
	assert.Equal(t, "Complete", got.Rows[1]["status"])
	assert.Equal(t, "New", got.Rows[2]["status"])
}

// TestTable_Update_MissingID verifies that updating an absent id is a
// silent no-op, idempotently.
func TestTable_Update_MissingID(t *testing.T) {
	table := testTable()

	once := table.Update("999", map[string]string{"status": "Complete"})
	twice := once.Update("999", map[string]string{"status": "Complete"})

	assert.Equal(t, table, once)
	assert.Equal(t, table, twice)
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

// TestTable_Delete verifies removal of every matching row.
func TestTable_Delete(t *testing.T) {
	table := testTable()

	got := table.Delete("2")

	assert.Equal(t, []string{"1", "3"}, ids(got))
	assert.Len(t, table.Rows, 3)
}

// TestTable_Delete_MissingID verifies that the second delete of the same
// id is a no-op: the table converges to the same state.
func TestTable_Delete_MissingID(t *testing.T) {
	table := testTable()

	once := table.Delete("2")
	twice := once.Delete("2")

	assert.Equal(t, once, twice)
}

// ─────────────────────────────────────────────
// Append / StatusCounts
// ─────────────────────────────────────────────

// TestTable_Append verifies that a new row lands after the existing rows
// and is copied, not aliased.
func TestTable_Append(t *testing.T) {
	table := testTable()
	row := Row{"id": "4", "status": "New"}

	got := table.Append(row)

	require.Len(t, got.Rows, 4)
	assert.Equal(t, "4", got.Rows[3]["id"])

	row["id"] = "mutated"
	assert.Equal(t, "4", got.Rows[3]["id"])
}

// TestTable_StatusCounts verifies the per-status summary.
func TestTable_StatusCounts(t *testing.T) {
	table := testTable()

	counts := table.StatusCounts()

	assert.Equal(t, map[string]int{"New": 2, "Complete": 1}, counts)
}

// TestNewTable verifies that the empty table carries the default schema.
func TestNewTable(t *testing.T) {
	table := NewTable()

	assert.Equal(t, DeviceColumns, table.Columns)
	assert.Empty(t, table.Rows)
}
