package repositories

import "errors"

// ErrInsufficientStock is returned when a processing run asks for more
// input stock than the unassigned lots of the product hold.
var ErrInsufficientStock = errors.New("insufficient unassigned stock")

// ErrDuplicatePayment is returned when an identical payment was recorded
// within the duplicate-submission window.
var ErrDuplicatePayment = errors.New("duplicate payment detected")
