package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	assetmanager "github.com/xiubox/asset-manager"
)

// ErrInvalid reports a manifest that parsed as YAML but failed
// validation.
var ErrInvalid = errors.New("invalid manifest")

type document struct {
	Version int   `yaml:"version"`
	Assets  []row `yaml:"assets"`
}

type row struct {
	Key   string `yaml:"key"`
	Path  string `yaml:"path"`
	Style string `yaml:"style"`
}

// Decode reads a manifest from r. parseKey maps each row's textual key
// to the cache key type; rows keep their document order. Unknown fields
// are rejected.
func Decode[K comparable](r io.Reader, parseKey func(string) (K, error)) ([]assetmanager.Registration[K], error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if doc.Version != 0 && doc.Version != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalid, doc.Version)
	}

	regs := make([]assetmanager.Registration[K], 0, len(doc.Assets))
	for i, r := range doc.Assets {
		if r.Key == "" {
			return nil, fmt.Errorf("%w: asset %d: missing key", ErrInvalid, i)
		}
		if r.Path == "" {
			return nil, fmt.Errorf("%w: asset %d (%s): missing path", ErrInvalid, i, r.Key)
		}

		style := assetmanager.LoadLazy
		if r.Style != "" {
			var err error
			style, err = assetmanager.ParseLoadStyle(r.Style)
			if err != nil {
				return nil, fmt.Errorf("asset %d (%s): %w", i, r.Key, err)
			}
		}

		key, err := parseKey(r.Key)
		if err != nil {
			return nil, fmt.Errorf("asset %d (%s): %w", i, r.Key, err)
		}
		regs = append(regs, assetmanager.Registration[K]{Key: key, Path: r.Path, Style: style})
	}
	return regs, nil
}

// Load reads a manifest file.
func Load[K comparable](path string, parseKey func(string) (K, error)) ([]assetmanager.Registration[K], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	regs, err := Decode(f, parseKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return regs, nil
}

// StringKey is a parseKey for caches keyed by plain strings.
func StringKey(s string) (string, error) { return s, nil }

// Keys returns the key of every registration, in order.
func Keys[K comparable](regs []assetmanager.Registration[K]) []K {
	keys := make([]K, len(regs))
	for i, r := range regs {
		keys[i] = r.Key
	}
	return keys
}
