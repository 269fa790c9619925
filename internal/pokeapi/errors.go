package pokeapi

import "fmt"

// BadResponseError indicates the server answered with a status other than 200
type BadResponseError struct {
	URL        string
	StatusCode int
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response from %s: status %d", e.URL, e.StatusCode)
}

// DecodeError indicates the body did not match the expected JSON shape
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps network-level failures (DNS, timeout, reset)
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("requesting %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
