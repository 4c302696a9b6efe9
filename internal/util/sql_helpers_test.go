package util

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringToNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "word", Valid: true}, StringToNullString("word"))
}

func TestNullStringToString(t *testing.T) {
	assert.Equal(t, "", NullStringToString(sql.NullString{String: "stale", Valid: false}))
	assert.Equal(t, "word", NullStringToString(sql.NullString{String: "word", Valid: true}))
}

func TestTimeHelpers(t *testing.T) {
	now := time.Now()

	zero := time.Time{}
	assert.False(t, TimePtrToNullTime(nil).Valid)
	assert.False(t, TimePtrToNullTime(&zero).Valid)
	assert.True(t, TimePtrToNullTime(&now).Valid)

	assert.Nil(t, NullTimeToPtr(sql.NullTime{}))
	ptr := NullTimeToPtr(sql.NullTime{Time: now, Valid: true})
	if assert.NotNil(t, ptr) {
		assert.True(t, now.Equal(*ptr))
	}
}

func TestIntHelpers(t *testing.T) {
	assert.False(t, IntPtrToNullInt32(nil).Valid)
	v := 42
	assert.Equal(t, sql.NullInt32{Int32: 42, Valid: true}, IntPtrToNullInt32(&v))

	assert.Nil(t, NullInt32ToPtr(sql.NullInt32{}))
	got := NullInt32ToPtr(sql.NullInt32{Int32: 7, Valid: true})
	if assert.NotNil(t, got) {
		assert.Equal(t, 7, *got)
	}
}
