package goobd

import "errors"

var (
	ErrTimeout               = errors.New("no response from adapter within timeout budget")
	ErrNoData                = errors.New("adapter reported NO DATA")
	ErrUnrecognisedParameter = errors.New("unrecognised parameter")
	ErrUnsupportedParameter  = errors.New("parameter not supported by this vehicle")
	ErrNotCAN                = errors.New("on-board monitoring results require a CAN bus")
	ErrFramingMismatch       = errors.New("mixed framing styles for one address in a single response")
	ErrFrameSequence         = errors.New("gap in multi-frame sequence numbers")
	ErrFrameConflict         = errors.New("response lines for one address disagree on command id")
)
