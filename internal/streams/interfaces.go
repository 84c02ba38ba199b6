package streams

// Closed is an interface which defines if a method to check if a stream is closed or not
type Closed interface {
	Closed() bool
}

// ByteSource is anything which can present its content as one contiguous, read-only byte slice.
// The codec never retains nor modifies the returned slice.
type ByteSource interface {
	Bytes() []byte
}
