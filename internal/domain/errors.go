package domain

// Общие доменные ошибки
var (
	ErrNotFound      = notFoundError("not found")
	ErrValidation    = validationError("invalid data")
	ErrEmptyCart     = validationError("cart is empty")
	ErrTotalMismatch = validationError("order total does not match items")
	ErrInvalidMoney  = validationError("invalid money amount")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

// Is: любая ошибка проверки совпадает и с собой, и с ErrValidation.
func (e validationError) Is(target error) bool {
	t, ok := target.(validationError)
	if !ok {
		return false
	}
	return t == e || t == ErrValidation
}
