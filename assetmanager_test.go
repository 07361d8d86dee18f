package assetmanager

import "testing"

type refHandle struct {
	path string
}

func (h *refHandle) Clone() *refHandle { return h }

func TestLoadStyleString(t *testing.T) {
	if got := LoadLazy.String(); got != "lazy" {
		t.Fatalf("LoadLazy.String() = %q, want %q", got, "lazy")
	}
	if got := LoadEager.String(); got != "eager" {
		t.Fatalf("LoadEager.String() = %q, want %q", got, "eager")
	}
	if got := LoadStyle(7).String(); got != "LoadStyle(7)" {
		t.Fatalf("LoadStyle(7).String() = %q", got)
	}
}

func TestParseLoadStyle(t *testing.T) {
	cases := []struct {
		in   string
		want LoadStyle
		ok   bool
	}{
		{"lazy", LoadLazy, true},
		{"eager", LoadEager, true},
		{"loaded", LoadEager, true},
		{"", 0, false},
		{"Eager", 0, false},
		{"immediate", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseLoadStyle(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseLoadStyle(%q) failed: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseLoadStyle(%q) should fail", tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("ParseLoadStyle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoaderFunc(t *testing.T) {
	var gotPath string
	ld := LoaderFunc[*refHandle](func(path string) *refHandle {
		gotPath = path
		return &refHandle{path: path}
	})

	h := ld.Load("textures/grass.png")
	if gotPath != "textures/grass.png" {
		t.Fatalf("loader saw path %q", gotPath)
	}
	if h.Clone() != h {
		t.Fatal("Clone should return the same reference")
	}
}
