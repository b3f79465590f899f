package domain

// PrimaryKeyColumn is the conventional integer primary key column the
// diagnostics queries inspect. Tables without an "id" column are reported
// as errors by the sequence endpoints rather than guessed at.
const PrimaryKeyColumn = "id"

// SequenceSuffix is the suffix PostgreSQL appends to serial/identity
// sequences created for a table's id column (users -> users_id_seq).
const SequenceSuffix = "_id_seq"

// SequenceName returns the conventional sequence name for a table.
func SequenceName(table string) string {
	return table + SequenceSuffix
}
