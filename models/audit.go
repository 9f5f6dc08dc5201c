package models

import "time"

// Action names recorded in the audit trail. Every mutating operation
// appends exactly one entry before success is reported to the caller.
const (
	ActionLogin      = "login"
	ActionLogout     = "logout"
	ActionAddRecord  = "add_record"
	ActionUpdate     = "update_record"
	ActionDelete     = "delete_record"
	ActionImport     = "import_records"
	ActionCreateUser = "create_user"
)

// ActionEntry is one line of the append-only audit log. Entries are never
// mutated or pruned.
type ActionEntry struct {
	// Timestamp is the UTC time the action completed, stored as ISO-8601.
	Timestamp time.Time `json:"timestamp"`

	// User is the identity that performed the action.
	User string `json:"user"`

	// Action is one of the Action* constants.
	Action string `json:"action"`

	// Details is free-text context, e.g. the record id that was touched.
	Details string `json:"details"`
}

// NewActionEntry builds an entry stamped with the current UTC time.
func NewActionEntry(user, action, details string) ActionEntry {
	return ActionEntry{
		Timestamp: time.Now().UTC(),
		User:      user,
		Action:    action,
		Details:   details,
	}
}
