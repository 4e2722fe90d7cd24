package fontres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFont writes the embedded Go Regular bytes under an arbitrary name, so
// directory stores can be populated with real, parseable font files.
func writeFont(t *testing.T, dir, tier, name string) {
	t.Helper()
	tierDir := filepath.Join(dir, tier)
	require.NoError(t, os.MkdirAll(tierDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tierDir, name), goregular.TTF, 0o644))
}

func TestResolve_ExactMatch(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, TierLatin, "DejaVuSans-Bold.ttf")
	writeFont(t, dir, TierLatin, "Unrelated.ttf")

	r := NewResolver(NewDirStore(dir))
	f, err := r.Resolve("en")
	require.NoError(t, err)
	require.Equal(t, TierLatin, f.Tier)
	require.Equal(t, "DejaVuSans-Bold.ttf", f.Name)
}

func TestResolve_CaseInsensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, TierLatin, "dejavusans-bold.TTF")

	r := NewResolver(NewDirStore(dir))
	f, err := r.Resolve("fr")
	require.NoError(t, err)
	require.Equal(t, "dejavusans-bold.TTF", f.Name)
}

func TestResolve_SubstringMatch(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, TierLatin, "DejaVuSansCondensed.ttf")

	r := NewResolver(NewDirStore(dir))
	f, err := r.Resolve("de")
	require.NoError(t, err)
	require.Equal(t, "DejaVuSansCondensed.ttf", f.Name)
}

func TestResolve_CJKTierPreferred(t *testing.T) {
	dir := t.TempDir()
	writeFont(t, dir, TierCJK, "NotoSansJP-Regular.otf")
	writeFont(t, dir, TierLatin, "DejaVuSans.ttf")

	r := NewResolver(NewDirStore(dir))
	f, err := r.Resolve("ja")
	require.NoError(t, err)
	require.Equal(t, TierCJK, f.Tier)
}

func TestResolve_FallsBackToAnyTier(t *testing.T) {
	dir := t.TempDir()
	// Nothing matches the configured candidates, but a resource exists.
	writeFont(t, dir, "extra", "Mystery.ttf")

	r := NewResolver(NewDirStore(dir))
	f, err := r.Resolve("en")
	require.NoError(t, err)
	require.Equal(t, "extra", f.Tier)
	require.Equal(t, "Mystery.ttf", f.Name)
}

func TestResolve_EmbeddedFallback(t *testing.T) {
	r := NewResolver(nil)
	f, err := r.Resolve("en")
	require.NoError(t, err)
	require.Equal(t, TierFallback, f.Tier)
	require.Equal(t, "Go-Bold.ttf", f.Name)
}

func TestResolve_NotFound(t *testing.T) {
	// An empty directory store with no embedded fallback. Platform paths may
	// exist on developer machines, so this asserts the error shape only when
	// resolution actually fails.
	r := NewResolver(NewDirStore(t.TempDir()))
	f, err := r.search("zz")
	if err == nil {
		t.Skipf("platform font found at %s, cannot exercise the not-found path", f.Name)
	}
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "zz", nf.Lang)
	require.NotEmpty(t, nf.Attempted)
	require.Contains(t, err.Error(), "latin/")
}

func TestLoad_CachesFaces(t *testing.T) {
	r := NewResolver(nil)

	a, err := r.Load("en", 20)
	require.NoError(t, err)
	b, err := r.Load("en", 20)
	require.NoError(t, err)
	require.Same(t, a, b, "same (language, size) must be served from cache")

	c, err := r.Load("en", 32)
	require.NoError(t, err)
	require.NotSame(t, a, c, "different sizes are distinct cache entries")
}

func TestLoad_NormalizesLanguageTags(t *testing.T) {
	r := NewResolver(nil)

	a, err := r.Load("fr-CA", 20)
	require.NoError(t, err)
	b, err := r.Load("FR", 20)
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestLoad_RejectsNonPositiveSize(t *testing.T) {
	r := NewResolver(nil)
	_, err := r.Load("en", 0)
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"fr-CA", "fr"},
		{"ja_JP", "ja"},
		{"pt-BR", "pt"},
		{"  de ", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
