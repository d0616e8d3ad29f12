package shop

import "errors"

// ErrInvalidArgument reports a command that was rejected before touching any
// simulation state, such as a negative time delta or a non-positive capacity
// request. A full waiting queue is not an error; it is the Rejected outcome
// recorded on the customer.
var ErrInvalidArgument = errors.New("invalid argument")
