package errors

import "errors"

var (
	ErrBadHTTPStatus      = errors.New("bad HTTP status")
	ErrEmptyToken         = errors.New("token is empty")
	ErrIPReceivedMismatch = errors.New("mismatching IP address received")
	ErrRecordNotFound     = errors.New("record not found")
	ErrRequestEncode      = errors.New("cannot encode request")
	ErrUnmarshalResponse  = errors.New("cannot unmarshal response")
)
