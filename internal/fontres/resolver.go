// Package fontres resolves language tags to concrete font resources through a
// tiered search strategy and caches loaded font faces for the process
// lifetime.
package fontres

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

// Tier names.
const (
	TierLatin    = "latin"
	TierCJK      = "cjk"
	TierFallback = "fallback"
)

// tierSearch is one step of the resolution cascade: a tier and the candidate
// resource names to try within it, in preference order.
type tierSearch struct {
	tier       string
	candidates []string
}

var latinCandidates = []string{
	"DejaVuSans-Bold.ttf",
	"DejaVuSans.ttf",
	"LiberationSans-Bold.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
}

var cjkCandidates = map[string][]string{
	"ja": {"NotoSansJP-Bold.otf", "NotoSansJP-Regular.otf", "NotoSansCJKjp-Regular.otf"},
	"zh": {"NotoSansSC-Bold.otf", "NotoSansSC-Regular.otf", "NotoSansCJKsc-Regular.otf"},
	"ko": {"NotoSansKR-Bold.otf", "NotoSansKR-Regular.otf", "NotoSansCJKkr-Regular.otf"},
}

var fallbackCandidates = []string{
	"Go-Bold.ttf",
	"Go-Regular.ttf",
}

// platformFontPaths are well-known system font locations tried as a last
// resort after every store tier has come up empty.
var platformFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/Library/Fonts/Arial Bold.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arialbd.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// tiersFor returns the search cascade for a normalized language code.
func tiersFor(lang string) []tierSearch {
	if c, ok := cjkCandidates[lang]; ok {
		return []tierSearch{
			{tier: TierCJK, candidates: c},
			{tier: TierFallback, candidates: fallbackCandidates},
		}
	}
	return []tierSearch{
		{tier: TierLatin, candidates: latinCandidates},
		{tier: TierFallback, candidates: fallbackCandidates},
	}
}

// NotFoundError reports that no font could be resolved for a language.
// Attempted lists every search location that was tried.
type NotFoundError struct {
	Lang      string
	Attempted []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fontres: no font available for language %q (searched: %s)",
		e.Lang, strings.Join(e.Attempted, ", "))
}

// Font is a resolved, parsed font resource.
type Font struct {
	// Tier and Name identify where the resource was found. For platform
	// fonts Tier is "platform" and Name is the file path.
	Tier string
	Name string

	Parsed *opentype.Font
}

// Resolver maps language tags to font faces. Loaded faces are cached for the
// process lifetime keyed by (language, pixel size); the cache is read-through
// and write-once, so it is safe for concurrent compositor calls.
type Resolver struct {
	store Store

	mu    sync.Mutex
	fonts map[string]*Font            // language -> resolved font
	faces map[faceKey]font.Face       // (language, size) -> face
	group singleflight.Group
}

type faceKey struct {
	lang string
	size int
}

// NewResolver creates a resolver over the given store. A nil store resolves
// against the embedded fonts only.
func NewResolver(store Store) *Resolver {
	if store == nil {
		store = EmbeddedStore{}
	}
	return &Resolver{
		store: store,
		fonts: make(map[string]*Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Normalize reduces a language tag to a 2-character lowercase base code
// ("fr-CA" -> "fr"). Unparseable tags are lowercased and truncated.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if t, err := language.Parse(tag); err == nil {
		if base, conf := t.Base(); conf != language.No {
			return base.String()
		}
	}
	tag = strings.ToLower(tag)
	if len(tag) > 2 {
		tag = tag[:2]
	}
	return tag
}

// Resolve finds and parses the font resource for a language tag, walking the
// tier cascade. The parsed font is cached per language.
func (r *Resolver) Resolve(lang string) (*Font, error) {
	lang = Normalize(lang)

	r.mu.Lock()
	if f, ok := r.fonts[lang]; ok {
		r.mu.Unlock()
		return f, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do("resolve/"+lang, func() (interface{}, error) {
		f, err := r.search(lang)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.fonts[lang] = f
		r.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Font), nil
}

// Load returns a font face for the language at the given pixel size,
// resolving and parsing the underlying font on first use. A cache hit never
// touches storage.
func (r *Resolver) Load(lang string, size int) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("fontres: pixel size must be positive, got %d", size)
	}
	lang = Normalize(lang)
	key := faceKey{lang: lang, size: size}

	r.mu.Lock()
	if f, ok := r.faces[key]; ok {
		r.mu.Unlock()
		return f, nil
	}
	r.mu.Unlock()

	v, err, _ := r.group.Do(fmt.Sprintf("load/%s/%d", lang, size), func() (interface{}, error) {
		resolved, err := r.Resolve(lang)
		if err != nil {
			return nil, err
		}
		face, err := opentype.NewFace(resolved.Parsed, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %dpx face from %s/%s: %w", size, resolved.Tier, resolved.Name, err)
		}
		r.mu.Lock()
		r.faces[key] = face
		r.mu.Unlock()
		return face, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(font.Face), nil
}

// search walks the tier cascade for a language: configured tiers with their
// candidate lists, then any resource in any known tier, then platform font
// paths.
func (r *Resolver) search(lang string) (*Font, error) {
	var attempted []string

	for _, ts := range tiersFor(lang) {
		available := r.store.List(ts.tier)
		if name, ok := matchCandidate(ts.candidates, available); ok {
			return r.parse(ts.tier, name)
		}
		for _, c := range ts.candidates {
			attempted = append(attempted, ts.tier+"/"+c)
		}
	}

	// Any resource in any known tier beats giving up.
	for _, tier := range r.store.Tiers() {
		if names := r.store.List(tier); len(names) > 0 {
			return r.parse(tier, names[0])
		}
		attempted = append(attempted, tier+"/*")
	}

	for _, path := range platformFontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			attempted = append(attempted, path)
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			attempted = append(attempted, path)
			continue
		}
		return &Font{Tier: "platform", Name: path, Parsed: parsed}, nil
	}

	return nil, &NotFoundError{Lang: lang, Attempted: attempted}
}

func (r *Resolver) parse(tier, name string) (*Font, error) {
	data, err := r.store.Read(tier, name)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s/%s: %w", tier, name, err)
	}
	return &Font{Tier: tier, Name: name, Parsed: parsed}, nil
}

// matchCandidate finds the best available resource for an ordered candidate
// list: exact name first, then case-insensitive, then substring.
func matchCandidate(candidates, available []string) (string, bool) {
	for _, c := range candidates {
		for _, a := range available {
			if a == c {
				return a, true
			}
		}
	}
	for _, c := range candidates {
		for _, a := range available {
			if strings.EqualFold(a, c) {
				return a, true
			}
		}
	}
	for _, c := range candidates {
		stem := strings.ToLower(strings.TrimSuffix(c, ".ttf"))
		stem = strings.TrimSuffix(stem, ".otf")
		for _, a := range available {
			la := strings.ToLower(a)
			if strings.Contains(la, stem) || strings.Contains(stem, strings.TrimSuffix(la, ".ttf")) {
				return a, true
			}
		}
	}
	return "", false
}
