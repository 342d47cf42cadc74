package value

import "testing"

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{List, "lst"},
		{Symbol, "sym"},
		{String, "str"},
		{Native, "ntv"},
		{Number, "num"},
		{User, "usr"},
		{Tag(99), "???"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("Tag(%d).String() = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestTagNamesAreThreeBytes(t *testing.T) {
	// the "is" builtin relies on every name being exactly three bytes
	for tag := List; tag <= User; tag++ {
		if n := len(tag.String()); n != 3 {
			t.Errorf("Tag(%d).String() = %q, length %d, want 3", tag, tag.String(), n)
		}
	}
}
