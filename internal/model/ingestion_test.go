package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngestion_Column(t *testing.T) {
	ing := &Ingestion{
		HeaderRow: 0,
		Columns: []IngestedColumn{
			{Name: "Date", MappedField: "date", Position: 0},
			{Name: "Memo", Position: 1},
			{Name: "Amount", MappedField: "amount", Position: 2},
		},
	}

	c, ok := ing.Column("amount")
	assert.True(t, ok)
	assert.Equal(t, "Amount", c.Name)

	_, ok = ing.Column("balance")
	assert.False(t, ok)

	assert.True(t, ing.HasHeader())
	ing.HeaderRow = -1
	assert.False(t, ing.HasHeader())
}
