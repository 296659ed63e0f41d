package schema

import (
	"testing"

	"github.com/Veraticus/sift/internal/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(name string, t header.DataType) header.ColumnInfo {
	return header.ColumnInfo{Name: name, Type: t, Region: "A2:A9"}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "posting date", Normalize("  Posting-Date "))
	assert.Equal(t, "amount usd", Normalize("AMOUNT (USD)"))
	assert.Equal(t, "debit", Normalize("Ｄｅｂｉｔ"))
	assert.Equal(t, "strasse", Normalize("STRASSE"))
}

func TestMap_SingleAmountStatement(t *testing.T) {
	m := Map([]header.ColumnInfo{
		col("Transaction Date", header.TypeDate),
		col("Description", header.TypeString),
		col("Amount", header.TypeNumber),
		col("Balance", header.TypeNumber),
		col("Category", header.TypeString),
	})

	require.True(t, m.Complete(), "missing: %v", m.Missing)

	date, ok := m.Column(FieldDate)
	require.True(t, ok)
	assert.Equal(t, "Transaction Date", date.Column)
	assert.Equal(t, 0, date.Index)

	desc, _ := m.Column(FieldDescription)
	assert.Equal(t, "Description", desc.Column)

	amount, _ := m.Column(FieldAmount)
	assert.Equal(t, "Amount", amount.Column)

	balance, _ := m.Column(FieldBalance)
	assert.Equal(t, 3, balance.Index)

	assert.Equal(t, []string{"Category"}, m.Unmapped)
}

func TestMap_DebitCreditStatement(t *testing.T) {
	m := Map([]header.ColumnInfo{
		col("Date", header.TypeDate),
		col("Details", header.TypeString),
		col("Money Out", header.TypeNumber),
		col("Money In", header.TypeNumber),
	})

	assert.True(t, m.Complete())
	debit, ok := m.Column(FieldDebit)
	require.True(t, ok)
	assert.Equal(t, "Money Out", debit.Column)
	credit, ok := m.Column(FieldCredit)
	require.True(t, ok)
	assert.Equal(t, "Money In", credit.Column)
	_, ok = m.Column(FieldAmount)
	assert.False(t, ok)
}

func TestMap_TypeMismatchIsSkipped(t *testing.T) {
	m := Map([]header.ColumnInfo{
		col("Date", header.TypeNumber),
		col("Posted", header.TypeDate),
		col("Memo", header.TypeString),
		col("Amount", header.TypeDate),
	})

	date, _ := m.Column(FieldDate)
	assert.Equal(t, "Posted", date.Column)
	assert.Equal(t, []Field{FieldAmount}, m.Missing)
}

func TestMap_ShortSynonymsMatchWholeTokens(t *testing.T) {
	m := Map([]header.ColumnInfo{
		col("Description", header.TypeString),
		col("Cr", header.TypeNumber),
	})

	credit, ok := m.Column(FieldCredit)
	require.True(t, ok)
	assert.Equal(t, "Cr", credit.Column)
	assert.Equal(t, []Field{FieldDate, FieldDebit}, m.Missing)
}

func TestMap_DebitWithoutCredit(t *testing.T) {
	m := Map([]header.ColumnInfo{
		col("Date", header.TypeDate),
		col("Details", header.TypeString),
		col("Money Out", header.TypeNumber),
	})

	_, ok := m.Column(FieldDebit)
	require.True(t, ok)
	assert.Equal(t, []Field{FieldCredit}, m.Missing)
	assert.False(t, m.Complete())
}

func TestMap_NoColumns(t *testing.T) {
	m := Map(nil)
	assert.Empty(t, m.Assignments)
	assert.Equal(t, []Field{FieldDate, FieldDescription, FieldAmount}, m.Missing)
	assert.False(t, m.Complete())
}
