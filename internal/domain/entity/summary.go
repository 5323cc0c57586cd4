package entity

import "github.com/shopspring/decimal"

type OrderGroup struct {
	Product  Product         `json:"product"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	Groups    []OrderGroup    `json:"groups"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func (s Summary) IsEmpty() bool {
	return len(s.Groups) == 0
}

// Summarize groups the snapshot by composite key, in first-seen order, and
// derives subtotals and the grand total. A well-formed cart already has unique
// keys; rehydrated data might not, so lines are regrouped anyway.
func Summarize(c Cart) Summary {
	groups := make([]OrderGroup, 0, c.Len())
	index := make(map[LineKey]int, c.Len())

	for _, line := range c.lines {
		key := line.Key()
		if i, ok := index[key]; ok {
			groups[i].Quantity += line.Quantity
			continue
		}
		index[key] = len(groups)
		groups = append(groups, OrderGroup{
			Product:  line.Product,
			Size:     line.Size,
			Quantity: line.Quantity,
		})
	}

	total := decimal.Zero
	count := 0
	for i := range groups {
		groups[i].Subtotal = groups[i].Product.Price.Mul(decimal.NewFromInt(int64(groups[i].Quantity)))
		total = total.Add(groups[i].Subtotal)
		count += groups[i].Quantity
	}

	return Summary{Groups: groups, Total: total, ItemCount: count}
}
