package domain

import (
	"encoding/json"
	"fmt"
)

// OrderItem снимок позиции корзины на момент оформления.
type OrderItem struct {
	Category string `json:"categoryName"`
	Item     string `json:"itemName"`
	Quantity int    `json:"quantity"`
	Price    Money  `json:"price"`
}

// Order доменная сущность заказа. Неизменяем после создания.
type Order struct {
	deliveryAddress string
	items           []OrderItem
	totalPrice      Money
}

// BuildOrder фиксирует каждую позицию корзины в OrderItem и считает итог.
func BuildOrder(state CartState, deliveryAddress string) (Order, error) {
	if len(state) == 0 {
		return Order{}, ErrEmptyCart
	}
	lines := state.Items()
	items := make([]OrderItem, 0, len(lines))
	for _, li := range lines {
		items = append(items, OrderItem{
			Category: li.Category,
			Item:     li.Item,
			Quantity: li.Quantity,
			Price:    li.UnitPrice,
		})
	}
	return Order{
		deliveryAddress: deliveryAddress,
		items:           items,
		totalPrice:      itemsTotal(items),
	}, nil
}

func itemsTotal(items []OrderItem) Money {
	totals := make([]Money, 0, len(items))
	for _, it := range items {
		totals = append(totals, Multiply(it.Price, it.Quantity))
	}
	return Sum(totals...)
}

func (o Order) DeliveryAddress() string { return o.deliveryAddress }

func (o Order) TotalPrice() Money { return o.totalPrice }

func (o Order) Items() []OrderItem {
	out := make([]OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

// Verify проверяет заказ, пришедший извне: хотя бы одна позиция, количество >= 1,
// итог равен сумме позиций.
func (o Order) Verify() error {
	if len(o.items) == 0 {
		return ErrEmptyCart
	}
	for _, it := range o.items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: quantity %d for %s/%s", ErrValidation, it.Quantity, it.Category, it.Item)
		}
	}
	if want := itemsTotal(o.items); !want.Equal(o.totalPrice) {
		return fmt.Errorf("%w: got %s, want %s", ErrTotalMismatch, o.totalPrice, want)
	}
	return nil
}

type orderJSON struct {
	DeliveryAddress string      `json:"deliveryAddress"`
	Items           []OrderItem `json:"items"`
	TotalPrice      Money       `json:"totalPrice"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	items := o.items
	if items == nil {
		items = []OrderItem{}
	}
	return json.Marshal(orderJSON{
		DeliveryAddress: o.deliveryAddress,
		Items:           items,
		TotalPrice:      o.totalPrice,
	})
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = Order{
		deliveryAddress: raw.DeliveryAddress,
		items:           raw.Items,
		totalPrice:      raw.TotalPrice,
	}
	return nil
}
