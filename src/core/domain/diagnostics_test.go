package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceStatusInSync(t *testing.T) {
	ahead := SequenceStatus{Table: "users", MaxID: 10, LastValue: 11}
	assert.True(t, ahead.InSync())

	// Equal values collide on the next nextval().
	equal := SequenceStatus{Table: "users", MaxID: 10, LastValue: 10}
	assert.False(t, equal.InSync())
	assert.Equal(t, int64(11), equal.RestartValue())

	behind := SequenceStatus{Table: "users", MaxID: 10, LastValue: 3}
	assert.False(t, behind.InSync())
}

func TestBackendSupportsSequences(t *testing.T) {
	assert.True(t, BackendPostgres.SupportsSequences())
	assert.False(t, BackendSQLite.SupportsSequences())
	assert.False(t, BackendUnknown.SupportsSequences())
}

func TestSequenceName(t *testing.T) {
	assert.Equal(t, "users_id_seq", SequenceName("users"))
}
