package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"posada/internal/core/id"
	"posada/internal/domain/catalogs/room"
	"posada/internal/domain/stay"
)

type embeddedBase struct {
	ID      id.ID `db:"id"`
	Version int   `db:"version"`
}

type mockEntity struct {
	embeddedBase
	Number  string `db:"number"`
	Skipped string `db:"-"`
	NoTag   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockEntity]()
	assert.Equal(t, []string{"id", "version", "number"}, cols)

	roomCols := ExtractDBColumns[room.Room]()
	for _, expected := range []string{"id", "number", "room_type_id", "floor", "status", "version"} {
		assert.Contains(t, roomCols, expected)
	}

	chargeCols := ExtractDBColumns[stay.Charge]()
	for _, expected := range []string{"id", "stay_id", "kind", "quantity", "unit_amount", "total_amount"} {
		assert.Contains(t, chargeCols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	e := mockEntity{
		embeddedBase: embeddedBase{ID: id.New(), Version: 5},
		Number:       "101",
		Skipped:      "ignored",
		NoTag:        "ignored",
	}

	m := StructToMap(e)

	assert.Equal(t, e.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "101", m["number"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 3)

	// pointer input behaves the same
	assert.Equal(t, m, StructToMap(&e))
}
