package handler

import (
	"html/template"
	"time"

	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/shopspring/decimal"
)

var unitTypes = map[int]string{
	0: "Each",
	1: "Case",
	2: "Roll",
}

var manifestFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "$" + d.StringFixed(2)
	},
	"unit": func(t int) string {
		if name, ok := unitTypes[t]; ok {
			return name
		}
		return "Each"
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

type manifestView struct {
	entities.OrderDetails
	OrderID    string
	StoreID    string
	StatusText string
	TotalUnits int
}

func newManifestView(ids IDCodec, d entities.OrderDetails) manifestView {
	units := 0
	for _, it := range d.Items {
		units += it.Quantity
	}
	return manifestView{
		OrderDetails: d,
		OrderID:      ids.Encode(d.ID),
		StoreID:      ids.Encode(d.StoreID),
		StatusText:   d.Status.Label(),
		TotalUnits:   units,
	}
}
