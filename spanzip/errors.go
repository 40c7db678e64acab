package spanzip

import "errors"

// ErrIndexOutOfRange is returned when a token points outside the raw buffer,
// or a run has its start after its end. Tokens produced by Encode never
// trigger it.
var ErrIndexOutOfRange = errors.New("index out of range")
