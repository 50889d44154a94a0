package domain

// CatalogItem услуга прачечной с ценой за единицу.
type CatalogItem struct {
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

type CatalogCategory struct {
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// Catalog прайс-лист, как его отдаёт реестр заказов.
type Catalog []CatalogCategory

func (c Catalog) Lookup(category, item string) (CatalogItem, bool) {
	for _, cat := range c {
		if cat.Name != category {
			continue
		}
		for _, it := range cat.Items {
			if it.Name == item {
				return it, true
			}
		}
	}
	return CatalogItem{}, false
}
