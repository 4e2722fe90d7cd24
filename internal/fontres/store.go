package fontres

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Store provides access to font resources grouped into named tiers.
// A tier is a bucket of candidate fonts searched as a unit (e.g. "latin",
// "cjk", "fallback").
type Store interface {
	// Tiers lists the tier names known to the store, in search order.
	Tiers() []string

	// List returns the resource names available in a tier, sorted.
	List(tier string) []string

	// Read returns the raw font bytes for a resource in a tier.
	Read(tier, name string) ([]byte, error)
}

// DirStore serves fonts from a directory tree where each immediate
// subdirectory is a tier and each .ttf/.otf/.ttc file in it is a resource.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

func (s *DirStore) Tiers() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var tiers []string
	for _, e := range entries {
		if e.IsDir() {
			tiers = append(tiers, e.Name())
		}
	}
	sort.Strings(tiers)
	return tiers
}

func (s *DirStore) List(tier string) []string {
	entries, err := os.ReadDir(filepath.Join(s.root, tier))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".ttf", ".otf", ".ttc":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (s *DirStore) Read(tier, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, tier, name))
	if err != nil {
		return nil, fmt.Errorf("reading font %s/%s: %w", tier, name, err)
	}
	return data, nil
}

// EmbeddedStore serves the Go fonts compiled into the binary under the
// "fallback" tier. It guarantees that Latin-script text can always be
// rendered, even on systems with no font files installed.
type EmbeddedStore struct{}

var embeddedFonts = map[string][]byte{
	"Go-Bold.ttf":    gobold.TTF,
	"Go-Regular.ttf": goregular.TTF,
}

func (EmbeddedStore) Tiers() []string {
	return []string{TierFallback}
}

func (EmbeddedStore) List(tier string) []string {
	if tier != TierFallback {
		return nil
	}
	names := make([]string, 0, len(embeddedFonts))
	for name := range embeddedFonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (EmbeddedStore) Read(tier, name string) ([]byte, error) {
	if tier == TierFallback {
		if data, ok := embeddedFonts[name]; ok {
			return data, nil
		}
	}
	return nil, fmt.Errorf("reading font %s/%s: no such embedded font", tier, name)
}

// MultiStore merges several stores. Earlier stores shadow later ones for
// resources with the same tier and name.
type MultiStore []Store

func (m MultiStore) Tiers() []string {
	seen := make(map[string]struct{})
	var tiers []string
	for _, s := range m {
		for _, tier := range s.Tiers() {
			if _, ok := seen[tier]; !ok {
				seen[tier] = struct{}{}
				tiers = append(tiers, tier)
			}
		}
	}
	return tiers
}

func (m MultiStore) List(tier string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, s := range m {
		for _, name := range s.List(tier) {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (m MultiStore) Read(tier, name string) ([]byte, error) {
	var firstErr error
	for _, s := range m {
		data, err := s.Read(tier, name)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("reading font %s/%s: empty store", tier, name)
	}
	return nil, firstErr
}
