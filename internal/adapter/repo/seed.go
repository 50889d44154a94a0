package repo

import "github.com/example/laundry-storefront/internal/domain"

// DefaultCatalog прайс-лист нового реестра.
var DefaultCatalog = domain.Catalog{
	{Name: "Wash & Iron", Items: []domain.CatalogItem{
		{Name: "Shirt", Price: domain.NewMoney(4)},
		{Name: "Trousers", Price: domain.NewMoney(5)},
		{Name: "Kandura", Price: domain.NewMoney(8)},
		{Name: "Abaya", Price: domain.NewMoney(10)},
	}},
	{Name: "Dry Clean", Items: []domain.CatalogItem{
		{Name: "Suit (2 pcs)", Price: domain.NewMoney(30)},
		{Name: "Jacket", Price: domain.NewMoney(18)},
		{Name: "Dress", Price: domain.NewMoney(25)},
	}},
	{Name: "Iron Only", Items: []domain.CatalogItem{
		{Name: "Shirt", Price: domain.NewMoney(3)},
		{Name: "Trousers", Price: domain.NewMoney(3)},
		{Name: "Kandura", Price: domain.NewMoney(5)},
	}},
	{Name: "Household", Items: []domain.CatalogItem{
		{Name: "Bed Sheet", Price: domain.NewMoney(7)},
		{Name: "Duvet", Price: domain.NewMoney(35)},
		{Name: "Curtain (per panel)", Price: domain.NewMoney(20)},
	}},
}
