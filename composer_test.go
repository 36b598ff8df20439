package mrbox

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// e2eTemplate carries every marker exactly once.
const e2eTemplate = `<html><link rel="stylesheet" href="./styles.css" /><script src="./game.js"></script><audio src="./two_tigers.mp3"></audio></html>`

// setupBundleDir writes bundle files into a temp directory. Empty map values are written
// as empty files; absent keys are not written.
func setupBundleDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func e2eFiles() map[string]string {
	return map[string]string{
		"index.html": e2eTemplate,
		"styles.css": "body{color:red}",
		"game.js":    "console.log(1)",
	}
}

// stubLoader implements BundleLoader for testing.
type stubLoader struct {
	bundle *Bundle
	err    error
	calls  int
}

func (s *stubLoader) LoadBundle() (*Bundle, error) {
	s.calls++
	return s.bundle, s.err
}

func TestCompose_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := setupBundleDir(t, e2eFiles())

	result, err := NewComposer().Compose(context.Background(), Input{BaseDir: dir})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := `<html><style>body{color:red}</style><script>console.log(1)</script><audio src="https://raw.githubusercontent.com/lynnyolanda22-code/game/main/two_tigers.mp3"></audio></html>`
	if result.HTML != want {
		t.Errorf("Compose() HTML =\n%s\nwant\n%s", result.HTML, want)
	}
	if !result.Complete() {
		t.Errorf("Complete() = false, missing %v", result.Missing())
	}
}

func TestCompose_AudioURL(t *testing.T) {
	t.Parallel()

	dir := setupBundleDir(t, e2eFiles())

	tests := []struct {
		name     string
		audioURL string
		wantAttr string
	}{
		{name: "explicit URL used byte for byte", audioURL: "https://cdn.example/a b.mp3?x=1&y=2", wantAttr: `src="https://cdn.example/a b.mp3?x=1&y=2"`},
		{name: "relative path accepted", audioURL: "./music/two_tigers.mp3", wantAttr: `src="./music/two_tigers.mp3"`},
		{name: "invalid URL not validated", audioURL: "not a url", wantAttr: `src="not a url"`},
		{name: "empty falls back to default", audioURL: "", wantAttr: `src="` + DefaultAudioURL + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := Compose(context.Background(), Input{BaseDir: dir, AudioURL: tt.audioURL})
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if !strings.Contains(result.HTML, "<audio "+tt.wantAttr+"></audio>") {
				t.Errorf("Compose() HTML = %q, want audio attribute %q", result.HTML, tt.wantAttr)
			}
		})
	}
}

func TestCompose_Deterministic(t *testing.T) {
	t.Parallel()

	dir := setupBundleDir(t, e2eFiles())
	input := Input{BaseDir: dir, AudioURL: "https://cdn.example/a.mp3"}
	composer := NewComposer()

	first, err := composer.Compose(context.Background(), input)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := composer.Compose(context.Background(), input)
		if err != nil {
			t.Fatalf("Compose() run %d error = %v", i, err)
		}
		if again.HTML != first.HTML {
			t.Fatalf("Compose() run %d output differs", i)
		}
	}
}

func TestCompose_ReadsFreshEachCall(t *testing.T) {
	t.Parallel()

	dir := setupBundleDir(t, e2eFiles())
	composer := NewComposer()

	if _, err := composer.Compose(context.Background(), Input{BaseDir: dir}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "styles.css"), []byte("body{color:blue}"), 0644); err != nil {
		t.Fatalf("rewriting stylesheet: %v", err)
	}

	result, err := composer.Compose(context.Background(), Input{BaseDir: dir})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !strings.Contains(result.HTML, "<style>body{color:blue}</style>") {
		t.Errorf("Compose() did not pick up the new stylesheet: %q", result.HTML)
	}
}

func TestCompose_MissingMarkers(t *testing.T) {
	t.Parallel()

	t.Run("absent stylesheet marker is a silent no-op", func(t *testing.T) {
		t.Parallel()

		files := e2eFiles()
		files["index.html"] = `<html><script src="./game.js"></script><audio src="./two_tigers.mp3"></audio></html>`
		dir := setupBundleDir(t, files)

		result, err := Compose(context.Background(), Input{BaseDir: dir, AudioURL: "V"})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}

		want := `<html><script>console.log(1)</script><audio src="V"></audio></html>`
		if result.HTML != want {
			t.Errorf("Compose() HTML = %q, want %q", result.HTML, want)
		}
		missing := result.Missing()
		if len(missing) != 1 || missing[0] != PlaceholderStylesheet {
			t.Errorf("Missing() = %v, want [%s]", missing, PlaceholderStylesheet)
		}
		sub, ok := result.Substitution(PlaceholderStylesheet)
		if !ok || sub.Found() {
			t.Errorf("Substitution(stylesheet) = %+v, %v; want found=false", sub, ok)
		}
	})

	t.Run("template without markers passes through", func(t *testing.T) {
		t.Parallel()

		files := e2eFiles()
		files["index.html"] = "<html>nothing to do</html>"
		dir := setupBundleDir(t, files)

		result, err := Compose(context.Background(), Input{BaseDir: dir})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if result.HTML != "<html>nothing to do</html>" {
			t.Errorf("Compose() HTML = %q, want template unchanged", result.HTML)
		}
		if len(result.Missing()) != 3 {
			t.Errorf("Missing() = %v, want all three", result.Missing())
		}
	})

	t.Run("strict mode reports missing markers", func(t *testing.T) {
		t.Parallel()

		files := e2eFiles()
		files["index.html"] = "<html>" + ScriptMarker + "</html>"
		dir := setupBundleDir(t, files)

		composer := NewComposer(WithStrictMarkers(true))
		result, err := composer.Compose(context.Background(), Input{BaseDir: dir})
		if !errors.Is(err, ErrMarkerMissing) {
			t.Fatalf("Compose() error = %v, want ErrMarkerMissing", err)
		}
		if !strings.Contains(err.Error(), "stylesheet, audio") {
			t.Errorf("error %q should name the missing placeholders", err)
		}
		if result == nil || result.HTML != "<html><script>console.log(1)</script></html>" {
			t.Errorf("strict Compose() should still return the result, got %+v", result)
		}
	})

	t.Run("strict mode accepts complete template", func(t *testing.T) {
		t.Parallel()

		dir := setupBundleDir(t, e2eFiles())

		composer := NewComposer(WithStrictMarkers(true))
		if !composer.Strict() {
			t.Fatal("Strict() = false, want true")
		}
		if _, err := composer.Compose(context.Background(), Input{BaseDir: dir}); err != nil {
			t.Errorf("Compose() error = %v", err)
		}
	})
}

func TestCompose_IOFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		omit    string
		wantErr error
	}{
		{name: "missing template", omit: "index.html", wantErr: ErrReadTemplate},
		{name: "missing stylesheet", omit: "styles.css", wantErr: ErrReadStylesheet},
		{name: "missing script", omit: "game.js", wantErr: ErrReadScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := e2eFiles()
			delete(files, tt.omit)
			dir := setupBundleDir(t, files)

			result, err := Compose(context.Background(), Input{BaseDir: dir})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compose() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Compose() error = %v, want wrapped fs.ErrNotExist", err)
			}
			if result != nil {
				t.Errorf("Compose() returned partial result %+v", result)
			}
		})
	}

	t.Run("template is not UTF-8", func(t *testing.T) {
		t.Parallel()

		files := e2eFiles()
		files["index.html"] = "<html>\xff\xfe</html>"
		dir := setupBundleDir(t, files)

		result, err := Compose(context.Background(), Input{BaseDir: dir})
		if !errors.Is(err, ErrReadTemplate) || !errors.Is(err, ErrInvalidUTF8) {
			t.Fatalf("Compose() error = %v, want ErrReadTemplate wrapping ErrInvalidUTF8", err)
		}
		if result != nil {
			t.Errorf("Compose() returned partial result %+v", result)
		}
	})

	t.Run("missing base directory", func(t *testing.T) {
		t.Parallel()

		_, err := Compose(context.Background(), Input{BaseDir: filepath.Join(t.TempDir(), "absent")})
		if !errors.Is(err, ErrInvalidBaseDir) {
			t.Errorf("Compose() error = %v, want ErrInvalidBaseDir", err)
		}
	})
}

func TestCompose_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &stubLoader{bundle: &Bundle{Template: e2eTemplate}}
	_, err := NewComposer(WithBundleLoader(loader)).Compose(ctx, Input{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compose() error = %v, want context.Canceled", err)
	}
	if loader.calls != 0 {
		t.Errorf("loader called %d times after cancellation, want 0", loader.calls)
	}
}

func TestCompose_WithBundleLoader(t *testing.T) {
	t.Parallel()

	t.Run("uses loader and ignores BaseDir", func(t *testing.T) {
		t.Parallel()

		loader := &stubLoader{bundle: &Bundle{
			Template:   e2eTemplate,
			Stylesheet: "body{color:red}",
			Script:     "console.log(1)",
		}}

		result, err := NewComposer(WithBundleLoader(loader)).Compose(context.Background(), Input{BaseDir: "/does/not/exist"})
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if loader.calls != 1 {
			t.Errorf("loader called %d times, want 1", loader.calls)
		}
		if !strings.HasPrefix(result.HTML, "<html><style>body{color:red}</style>") {
			t.Errorf("Compose() HTML = %q", result.HTML)
		}
	})

	t.Run("loader error propagates", func(t *testing.T) {
		t.Parallel()

		loadErr := errors.New("bucket unavailable")
		loader := &stubLoader{err: loadErr}

		result, err := NewComposer(WithBundleLoader(loader)).Compose(context.Background(), Input{})
		if !errors.Is(err, loadErr) {
			t.Errorf("Compose() error = %v, want %v", err, loadErr)
		}
		if result != nil {
			t.Error("Compose() returned result on loader error")
		}
	})

	t.Run("nil loader panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("expected panic for nil loader")
			}
		}()
		WithBundleLoader(nil)
	})
}

func TestComposeBundle_StarterBundle(t *testing.T) {
	t.Parallel()

	starter, err := StarterBundle()
	if err != nil {
		t.Fatalf("StarterBundle() error = %v", err)
	}

	result, err := NewComposer(WithStrictMarkers(true)).ComposeBundle(context.Background(), *starter, "")
	if err != nil {
		t.Fatalf("ComposeBundle() error = %v", err)
	}

	for _, marker := range []string{StylesheetMarker, ScriptMarker, AudioMarker} {
		if strings.Contains(result.HTML, marker) {
			t.Errorf("composed starter still contains marker %q", marker)
		}
	}
	if !strings.Contains(result.HTML, "<style>"+starter.Stylesheet+"</style>") {
		t.Error("composed starter is missing the inline stylesheet")
	}
	if !strings.Contains(result.HTML, "<script>"+starter.Script+"</script>") {
		t.Error("composed starter is missing the inline script")
	}
}
