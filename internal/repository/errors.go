package repository

import "errors"

// ErrConditionalUpdate signals that a guarded UPDATE matched zero rows,
// typically because another transaction consumed the stock first.
var ErrConditionalUpdate = errors.New("conditional update matched no rows")
