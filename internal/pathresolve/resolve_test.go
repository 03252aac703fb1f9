package pathresolve

import "testing"

func TestResolveRelativeAndAbsolute(t *testing.T) {
	got, err := Resolve("src/main.go", "/work/proj")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/work/proj/src/main.go" {
		t.Errorf("Resolve relative = %q", got)
	}

	got2, err := Resolve("/etc/passwd", "/work/proj")
	if err != nil {
		t.Fatal(err)
	}
	if got2 != "/etc/passwd" {
		t.Errorf("Resolve absolute = %q", got2)
	}
}

func TestResolveNullByte(t *testing.T) {
	_, err := Resolve("foo\x00bar", "/work/proj")
	if err != ErrNullByte {
		t.Errorf("expected ErrNullByte, got %v", err)
	}
}

func TestResolveDotDot(t *testing.T) {
	got, err := Resolve("../other/file.txt", "/work/proj/src")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/work/other/file.txt" {
		t.Errorf("Resolve with .. = %q", got)
	}
}

func TestNormalizeMacPrivate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/private/var/folders/x", "/var/folders/x"},
		{"/private/tmp/foo", "/tmp/foo"},
		{"/var/folders/x", "/var/folders/x"},
		{"/private/etc/hosts", "/etc/hosts"},
	}
	for _, tt := range tests {
		if got := NormalizeMacPrivate(tt.in); got != tt.want {
			t.Errorf("NormalizeMacPrivate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
