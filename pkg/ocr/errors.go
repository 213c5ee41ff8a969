package ocr

import "errors"

// ErrUnavailable is returned when the OCR backend fails. Callers should treat
// the text as empty and surface a warning rather than propagate the failure.
var ErrUnavailable = errors.New("ocr backend unavailable")
