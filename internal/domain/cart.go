package domain

import "sort"

// CartKey идентифицирует позицию корзины: категория + название услуги.
type CartKey struct {
	Category string
	Item     string
}

// CartLineItem позиция корзины. Quantity всегда >= 1, пока позиция существует.
type CartLineItem struct {
	Category  string
	Item      string
	Quantity  int
	UnitPrice Money
}

func (li CartLineItem) Key() CartKey { return CartKey{Category: li.Category, Item: li.Item} }

// CartState чистое ядро корзины без побочных эффектов.
type CartState map[CartKey]CartLineItem

func NewCartState() CartState { return make(CartState) }

// Add увеличивает количество существующей позиции или добавляет новую с количеством 1.
// Цена за единицу берётся из последнего добавления.
func (s CartState) Add(category, item string, unitPrice Money) {
	key := CartKey{Category: category, Item: item}
	li := s[key]
	s[key] = CartLineItem{
		Category:  category,
		Item:      item,
		Quantity:  li.Quantity + 1,
		UnitPrice: unitPrice,
	}
}

func (s CartState) Remove(category, item string) {
	delete(s, CartKey{Category: category, Item: item})
}

// SetQuantity перезаписывает количество существующей позиции; quantity <= 0 удаляет её.
// Отсутствующая позиция не создаётся: для неё нет цены.
func (s CartState) SetQuantity(category, item string, quantity int) {
	key := CartKey{Category: category, Item: item}
	if quantity <= 0 {
		delete(s, key)
		return
	}
	li, ok := s[key]
	if !ok {
		return
	}
	li.Quantity = quantity
	s[key] = li
}

func (s CartState) Clone() CartState {
	out := make(CartState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Items позиции, упорядоченные по категории, затем по услуге.
func (s CartState) Items() []CartLineItem {
	out := make([]CartLineItem, 0, len(s))
	for _, li := range s {
		out = append(out, li)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Item < out[j].Item
	})
	return out
}

func LineTotal(li CartLineItem) Money {
	return Multiply(li.UnitPrice, li.Quantity)
}

func CartTotal(s CartState) Money {
	totals := make([]Money, 0, len(s))
	for _, li := range s {
		totals = append(totals, LineTotal(li))
	}
	return Sum(totals...)
}

// ItemCount число единиц, а не позиций.
func ItemCount(s CartState) int {
	n := 0
	for _, li := range s {
		n += li.Quantity
	}
	return n
}
