package pitch

import "errors"

// ErrChunkSize reports a chunk or frame whose length does not match the
// detector's configuration.
var ErrChunkSize = errors.New("pitch: chunk size mismatch")

var errClosed = errors.New("pitch: detector is closed")
