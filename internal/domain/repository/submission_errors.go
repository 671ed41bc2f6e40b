package repository

import "errors"

var (
	// ErrSerialization означает, что транзакция над попыткой столкнулась с
	// конкурентной (deadlock / serialization failure) и может быть повторена.
	ErrSerialization = errors.New("submission transaction serialization failure")
)
