package serial_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/xtls/xrelay/common/serial"
)

func TestToString(t *testing.T) {
	s := "a"
	data := []struct {
		Value  interface{}
		String string
	}{
		{Value: s, String: s},
		{Value: &s, String: s},
		{Value: errors.New("t"), String: "t"},
		{Value: []byte{0x0a, 0xff}, String: "0aff"},
		{Value: 42, String: "42"},
		{Value: nil, String: ""},
	}
	for _, c := range data {
		if r := cmp.Diff(ToString(c.Value), c.String); r != "" {
			t.Error(r)
		}
	}
}

func TestConcat(t *testing.T) {
	if r := cmp.Diff(Concat("a", 1, " ", []byte{0x01}), "a1 01"); r != "" {
		t.Error(r)
	}
}
