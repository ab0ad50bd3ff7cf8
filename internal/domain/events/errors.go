package events

import "fmt"

// MissingFieldError возвращается валидацией входящего события,
// когда не заполнено обязательное поле
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func errMissingField(field string) error {
	return MissingFieldError{Field: field}
}
