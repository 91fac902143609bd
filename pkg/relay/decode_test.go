package relay

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		value []byte
		token string
		err   error
	}{
		{"byte value", ModeByte, []byte{42}, "42", nil},
		{"byte zero", ModeByte, []byte{0}, "0", nil},
		{"byte max", ModeByte, []byte{255}, "255", nil},
		{"byte ignores trailing payload", ModeByte, []byte{7, 99}, "7", nil},
		{"byte empty", ModeByte, nil, "", ErrEmptyValue},
		{"text numeric", ModeText, []byte("117"), "117", nil},
		{"text trailing newline", ModeText, []byte("23\r\n"), "23", nil},
		{"text non-numeric", ModeText, []byte("hello"), "hello", nil},
		{"text negative", ModeText, []byte("-5"), "-5", nil},
		{"text empty", ModeText, []byte(""), "", ErrEmptyValue},
		{"text whitespace only", ModeText, []byte(" \n"), "", ErrEmptyValue},
		{"text invalid utf8", ModeText, []byte{0xff, 0xfe}, "", ErrInvalidValue},
	}
	for _, test := range tests {
		token, err := Decode(test.mode, test.value)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: Decode returned error %v, expected %v", test.name, err, test.err)
			continue
		}
		if token != test.token {
			t.Errorf("%s: Decode = %q, expected %q", test.name, token, test.token)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeByte.String() != "byte" || ModeText.String() != "text" {
		t.Errorf("unexpected mode names: %s, %s", ModeByte, ModeText)
	}
}
