package domain

import (
	"fmt"
	"time"
)

// Contact контактные данные и детали забора вещей.
type Contact struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PickupAddress string `json:"pickupAddress"`
	PickupDate    string `json:"pickupDate"`
	PickupTime    string `json:"pickupTime"`
	Notes         string `json:"notes,omitempty"`
}

// Placement конверт, в котором заказ уходит в реестр. Reference служит ключом
// идемпотентности: повторная доставка того же конверта не создаёт второй заказ.
type Placement struct {
	Reference string    `json:"reference"`
	Owner     string    `json:"owner"`
	PlacedAt  time.Time `json:"placedAt"`
	Contact   Contact   `json:"contact"`
	Order     Order     `json:"order"`
}

func (p Placement) Validate() error {
	if p.Reference == "" {
		return fmt.Errorf("%w: missing reference", ErrValidation)
	}
	if p.Owner == "" {
		return fmt.Errorf("%w: missing owner", ErrValidation)
	}
	return p.Order.Verify()
}

// Placed запись истории: заказ с номером и временем оформления, без контактов.
func (p Placement) Placed() PlacedOrder {
	return PlacedOrder{Reference: p.Reference, PlacedAt: p.PlacedAt, Order: p.Order}
}

// PlacedOrder заказ в истории владельца, как его отдаёт реестр.
type PlacedOrder struct {
	Reference string    `json:"reference"`
	PlacedAt  time.Time `json:"placedAt"`
	Order     Order     `json:"order"`
}
