package goobd

// Transport is the byte pipe to an ELM327-class adapter. Read must not
// block: it returns (0, nil) when nothing is buffered and the
// dispatcher layers its own poll timeout on top. Implementations live
// in the adapter package; the replay backend implements the same
// contract from a captured session log.
type Transport interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Close() error
}
