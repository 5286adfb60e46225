package orders

// LineSubtotal prices a single cart line. The unit price is the product base
// price plus every selected option surcharge, multiplied by quantity. Amounts
// are whole rupiah, so no rounding is involved.
func LineSubtotal(basePrice int, optionPrices []int, quantity int) int {
	unit := basePrice
	for _, price := range optionPrices {
		unit += price
	}
	return unit * quantity
}

// CartTotal sums the line subtotals for a whole submission.
func CartTotal(items []SubmitOrderItem) int {
	total := 0
	for _, item := range items {
		total += LineSubtotal(item.ProductPrice, item.optionPrices(), item.Quantity)
	}
	return total
}
