package tokenizer

import "errors"

// ErrNilCounter is returned when counting is requested without a Counter.
var ErrNilCounter = errors.New("nil tokenizer counter")

// CountText estimates the tokens of text using counter.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, ErrNilCounter
	}
	return counter.CountString(text)
}
