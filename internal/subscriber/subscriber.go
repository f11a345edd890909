package subscriber

import "errors"

// NewSubscriber is a validated subscription request.
type NewSubscriber struct {
	Email Email
	Name  Name
}

// New validates both fields. When both are invalid the returned error
// carries both reasons.
func New(name, email string) (NewSubscriber, error) {
	n, nameErr := ParseName(name)
	e, emailErr := ParseEmail(email)
	if err := errors.Join(nameErr, emailErr); err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: n, Email: e}, nil
}
