package goobd

// Status classifies the outcome of one dispatched command.
type Status int

const (
	StatusOk Status = iota
	StatusNoData
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "OK"
	case StatusNoData:
		return "NO DATA"
	case StatusTimeout:
		return "TIMEOUT"
	}
	return "UNKNOWN"
}
