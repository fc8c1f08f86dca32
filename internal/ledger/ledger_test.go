package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-kickcraft/internal/model"
)

func baseShoe() *model.Shoe {
	return &model.Shoe{
		Name:     "Air Zoom",
		Brand:    "Nike",
		Category: "Running",
		Price:    4999,
		Discount: 10,
		Stock:    25,
		Sales:    40,
	}
}

func baseUpdate() Update {
	return Update{
		Name:     "Air Zoom",
		Brand:    "Nike",
		Category: "Running",
		Price:    4999,
		Discount: 10,
		Stock:    25,
		Sales:    40,
	}
}

func TestApplyAppendsOnSalesChange(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	shoe := baseShoe()
	in := baseUpdate()
	in.Sales = 55
	in.Price = 4499
	in.Discount = 15

	entry := Apply(shoe, in, now)
	require.NotNil(t, entry)

	assert.Equal(t, 55, entry.Sales)
	assert.Equal(t, 4499.0, entry.Price)
	assert.Equal(t, 15.0, entry.Discount)
	assert.Equal(t, now, entry.Timestamp)

	require.Len(t, shoe.SalesHistory, 1)
	assert.Equal(t, *entry, shoe.SalesHistory[0])
	assert.Equal(t, 55, shoe.Sales)
}

func TestApplyDecreaseAlsoAppends(t *testing.T) {
	shoe := baseShoe()
	in := baseUpdate()
	in.Sales = 12

	entry := Apply(shoe, in, time.Now())
	require.NotNil(t, entry)
	assert.Equal(t, 12, entry.Sales)
	assert.Len(t, shoe.SalesHistory, 1)
}

func TestApplySkipsWhenSalesUnchanged(t *testing.T) {
	shoe := baseShoe()

	// Price, discount and stock all move, sales does not.
	in := baseUpdate()
	in.Price = 3999
	in.Discount = 25
	in.Stock = 5

	entry := Apply(shoe, in, time.Now())
	assert.Nil(t, entry)
	assert.Empty(t, shoe.SalesHistory)

	// The scalar fields were still overwritten wholesale.
	assert.Equal(t, 3999.0, shoe.Price)
	assert.Equal(t, 25.0, shoe.Discount)
	assert.Equal(t, 5, shoe.Stock)
}

func TestApplyResubmitNeverGrowsLedger(t *testing.T) {
	shoe := baseShoe()
	in := baseUpdate()
	in.Sales = 50

	require.NotNil(t, Apply(shoe, in, time.Now()))
	require.Len(t, shoe.SalesHistory, 1)

	// Same figure again: no growth, any number of times.
	for i := 0; i < 3; i++ {
		assert.Nil(t, Apply(shoe, in, time.Now()))
	}
	assert.Len(t, shoe.SalesHistory, 1)
}

func TestApplyGrowsByExactlyOnePerChange(t *testing.T) {
	shoe := baseShoe()
	in := baseUpdate()

	for i, sales := range []int{41, 42, 41, 100} {
		in.Sales = sales
		entry := Apply(shoe, in, time.Now())
		require.NotNil(t, entry)
		assert.Len(t, shoe.SalesHistory, i+1)
	}

	// Entries keep insertion order.
	got := make([]int, 0, len(shoe.SalesHistory))
	for _, e := range shoe.SalesHistory {
		got = append(got, e.Sales)
	}
	assert.Equal(t, []int{41, 42, 41, 100}, got)
}

func TestApplyOverwritesAllMutableFields(t *testing.T) {
	shoe := baseShoe()
	in := Update{
		Name:     "Court Vision",
		Brand:    "Adidas",
		Category: "Casual",
		Price:    2999,
		Discount: 0,
		Stock:    80,
		Sales:    40,
		Images:   []string{"court.webp"},
	}

	Apply(shoe, in, time.Now())

	assert.Equal(t, "Court Vision", shoe.Name)
	assert.Equal(t, "Adidas", shoe.Brand)
	assert.Equal(t, "Casual", shoe.Category)
	assert.Equal(t, 2999.0, shoe.Price)
	assert.Equal(t, 0.0, shoe.Discount)
	assert.Equal(t, 80, shoe.Stock)
	assert.Equal(t, []string{"court.webp"}, []string(shoe.Images))
}
