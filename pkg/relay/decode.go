package relay

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode selects how raw characteristic values are decoded into tokens.
type Mode int

const (
	// ModeByte reads the first byte of a value as an unsigned integer.
	ModeByte Mode = iota
	// ModeText reads a value as a UTF-8 string, trimmed of surrounding
	// whitespace. Serial bridges commonly append a newline.
	ModeText
)

func (m Mode) String() string {
	if m == ModeText {
		return "text"
	}
	return "byte"
}

var (
	ErrEmptyValue   = errors.New("relay: empty characteristic value")
	ErrInvalidValue = errors.New("relay: characteristic value is not valid UTF-8")
)

// Decode renders a raw characteristic value as a token. In byte mode the
// token is always numeric; in text mode it is whatever the peripheral sent,
// which may or may not parse as a number.
func Decode(mode Mode, value []byte) (string, error) {
	if mode == ModeText {
		if !utf8.Valid(value) {
			return "", ErrInvalidValue
		}
		token := strings.TrimSpace(string(value))
		if token == "" {
			return "", ErrEmptyValue
		}
		return token, nil
	}
	if len(value) == 0 {
		return "", ErrEmptyValue
	}
	return strconv.Itoa(int(value[0])), nil
}
