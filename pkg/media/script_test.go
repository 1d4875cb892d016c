package media

import (
	"strings"
	"testing"
)

func TestBuildPartitionScript_Default(t *testing.T) {
	script, err := BuildPartitionScript("+64M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"label: dos", "size=64M", "type=e", "bootable"} {
		if !strings.Contains(script, want) {
			t.Fatalf("script missing %q:\n%s", want, script)
		}
	}
}

func TestBuildPartitionScript_CustomSize(t *testing.T) {
	script, err := BuildPartitionScript("+128M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, "size=128M") {
		t.Fatalf("script does not use custom size:\n%s", script)
	}
	if strings.Contains(script, "64M") {
		t.Fatalf("script still contains default size:\n%s", script)
	}
}

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+64M", "64M", false},
		{"64M", "64M", false},
		{"+128M", "128M", false},
		{"2G", "2G", false},
		{"+1GiB", "1GiB", false},
		{"131072", "131072", false},
		{" +64M ", "64M", false},
		{"", "", true},
		{"+", "", true},
		{"M64", "", true},
		{"64X", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeSize(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NormalizeSize(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeSize(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeSize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
