package domain

import (
	"sort"
	"strings"
)

// CheckoutForm данные формы оформления. Не сохраняются.
type CheckoutForm struct {
	Name            string
	Phone           string
	PickupAddress   string
	DeliveryAddress string
	SameAsPickup    bool
	PickupDate      string
	PickupTime      string
	Notes           string
}

// FieldErrors сообщения об ошибках по полям формы.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+fe[f])
	}
	return "invalid checkout form: " + strings.Join(msgs, "; ")
}

func (fe FieldErrors) Unwrap() error { return ErrValidation }

// Validate возвращает nil или FieldErrors по каждому незаполненному обязательному полю.
func (f CheckoutForm) Validate() error {
	errs := FieldErrors{}
	if blank(f.Name) {
		errs["name"] = "Name is required"
	}
	if blank(f.Phone) {
		errs["phone"] = "Phone number is required"
	}
	if blank(f.PickupAddress) {
		errs["pickupAddress"] = "Pickup address is required"
	}
	if !f.SameAsPickup && blank(f.DeliveryAddress) {
		errs["deliveryAddress"] = "Delivery address is required"
	}
	if blank(f.PickupDate) {
		errs["pickupDate"] = "Pickup date is required"
	}
	if blank(f.PickupTime) {
		errs["pickupTime"] = "Pickup time is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f CheckoutForm) EffectiveDeliveryAddress() string {
	if f.SameAsPickup {
		return f.PickupAddress
	}
	return f.DeliveryAddress
}

func (f CheckoutForm) Contact() Contact {
	return Contact{
		Name:          strings.TrimSpace(f.Name),
		Phone:         strings.TrimSpace(f.Phone),
		PickupAddress: f.PickupAddress,
		PickupDate:    f.PickupDate,
		PickupTime:    f.PickupTime,
		Notes:         f.Notes,
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
