// Package subscriber holds the validated domain types for a subscription
// request. Values of Name and Email can only be obtained through ParseName
// and ParseEmail, so code receiving them never re-validates.
package subscriber
