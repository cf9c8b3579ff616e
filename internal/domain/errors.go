package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure modes the order workflow can report.
type ErrorKind string

const (
	KindNoItemsProvided         ErrorKind = "NoItemsProvided"
	KindUnauthenticated         ErrorKind = "Unauthenticated"
	KindForbidden               ErrorKind = "Forbidden"
	KindProductNotFound         ErrorKind = "ProductNotFound"
	KindOrderNotFound           ErrorKind = "OrderNotFound"
	KindInvalidQuantity         ErrorKind = "InvalidQuantity"
	KindInsufficientStock       ErrorKind = "InsufficientStock"
	KindInvalidStatusTransition ErrorKind = "InvalidStatusTransition"
	KindInvalidProductInput     ErrorKind = "InvalidProductInput"
	KindPersistenceFailure      ErrorKind = "PersistenceFailure"
)

// Error is a tagged failure carrying the kind plus whatever context the kind
// needs (offending product, available stock). The HTTP layer maps kinds to
// status codes; nothing else inspects the message.
type Error struct {
	Kind      ErrorKind
	ProductID string
	Available int
	message   string
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf reports the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func ErrNoItemsProvided() *Error {
	return &Error{Kind: KindNoItemsProvided, message: "no order items provided"}
}

func ErrUnauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, message: "user not authenticated"}
}

func ErrForbidden() *Error {
	return &Error{Kind: KindForbidden, message: "forbidden"}
}

func ErrProductNotFound(productID string) *Error {
	return &Error{
		Kind:      KindProductNotFound,
		ProductID: productID,
		message:   fmt.Sprintf("product not found: %s", productID),
	}
}

func ErrOrderNotFound(orderID string) *Error {
	return &Error{Kind: KindOrderNotFound, message: fmt.Sprintf("order not found: %s", orderID)}
}

func ErrInvalidQuantity(productID string) *Error {
	return &Error{
		Kind:      KindInvalidQuantity,
		ProductID: productID,
		message:   fmt.Sprintf("invalid quantity for product %s", productID),
	}
}

func ErrInsufficientStock(productID string, available int) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		ProductID: productID,
		Available: available,
		message:   fmt.Sprintf("insufficient stock for product %s: %d available", productID, available),
	}
}

func ErrInvalidStatusTransition(from, to OrderStatus) *Error {
	return &Error{
		Kind:    KindInvalidStatusTransition,
		message: fmt.Sprintf("cannot transition order from %s to %s", from, to),
	}
}

func ErrInvalidProductInput(message string) *Error {
	return &Error{Kind: KindInvalidProductInput, message: message}
}

func ErrPersistenceFailure(cause error) *Error {
	return &Error{Kind: KindPersistenceFailure, message: "storage failure", cause: cause}
}
