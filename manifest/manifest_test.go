package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	assetmanager "github.com/xiubox/asset-manager"
)

func TestDecode(t *testing.T) {
	doc := `
version: 1
assets:
  - key: tank
    path: models/tank.glb
    style: eager
  - key: grass
    path: textures/grass.png
  - key: click
    path: sfx/click.ogg
    style: lazy
`
	regs, err := Decode(strings.NewReader(doc), StringKey)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("expected 3 registrations, got %d", len(regs))
	}

	want := []assetmanager.Registration[string]{
		{Key: "tank", Path: "models/tank.glb", Style: assetmanager.LoadEager},
		{Key: "grass", Path: "textures/grass.png", Style: assetmanager.LoadLazy},
		{Key: "click", Path: "sfx/click.ogg", Style: assetmanager.LoadLazy},
	}
	for i, w := range want {
		if regs[i] != w {
			t.Fatalf("registration %d = %+v, want %+v", i, regs[i], w)
		}
	}
}

func TestDecode_LoadedSynonym(t *testing.T) {
	doc := `
assets:
  - key: tank
    path: models/tank.glb
    style: loaded
`
	regs, err := Decode(strings.NewReader(doc), StringKey)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if regs[0].Style != assetmanager.LoadEager {
		t.Fatalf("style = %v, want eager", regs[0].Style)
	}
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing key", "assets:\n  - path: a.png\n"},
		{"missing path", "assets:\n  - key: a\n"},
		{"unknown style", "assets:\n  - key: a\n    path: a.png\n    style: sometime\n"},
		{"unknown field", "assets:\n  - key: a\n    path: a.png\n    color: red\n"},
		{"bad version", "version: 2\nassets:\n  - key: a\n    path: a.png\n"},
		{"empty", ""},
		{"not yaml", "{{{"},
	}
	for _, tc := range cases {
		if _, err := Decode(strings.NewReader(tc.doc), StringKey); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestDecode_InvalidSentinel(t *testing.T) {
	_, err := Decode(strings.NewReader("assets:\n  - path: a.png\n"), StringKey)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestDecode_CustomKeyType(t *testing.T) {
	doc := `
assets:
  - key: "7"
    path: models/seven.glb
  - key: "42"
    path: models/answer.glb
`
	regs, err := Decode(strings.NewReader(doc), strconv.Atoi)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if regs[0].Key != 7 || regs[1].Key != 42 {
		t.Fatalf("keys = %d, %d", regs[0].Key, regs[1].Key)
	}

	// parseKey failures carry the row context
	_, err = Decode(strings.NewReader("assets:\n  - key: seven\n    path: a.glb\n"), strconv.Atoi)
	if err == nil {
		t.Fatal("expected a key parse error")
	}
	if !strings.Contains(err.Error(), "seven") {
		t.Fatalf("error does not name the row: %v", err)
	}
}

func TestKeys(t *testing.T) {
	regs := []assetmanager.Registration[string]{
		{Key: "a", Path: "a.png"},
		{Key: "b", Path: "b.png"},
	}
	keys := Keys(regs)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys = %v", keys)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	doc := "assets:\n  - key: grass\n    path: textures/grass.png\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	regs, err := Load(path, StringKey)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(regs) != 1 || regs[0].Key != "grass" {
		t.Fatalf("Load returned %+v", regs)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), StringKey); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
