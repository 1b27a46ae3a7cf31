package domain

import "errors"

// ErrRatingOutOfRange reports a rating outside [0, 5].
var ErrRatingOutOfRange = errors.New("Rating must be between 0.0 and 5.0")
