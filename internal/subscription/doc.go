// Package subscription implements the subscription intake pipeline.
//
// Subscribe converts raw form input into domain types, stores the
// subscriber, then sends the confirmation email. Errors are classified by
// ErrInvalidSubscriber, ErrStorage and ErrDispatch so the HTTP layer can map
// them to status codes without inspecting causes.
package subscription
