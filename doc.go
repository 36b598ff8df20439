// Package mrbox composes the Mr Box page into a single self-contained HTML document.
//
// # Quick Start
//
// Compose a bundle directory and hand the result to any HTML host:
//
//	result, err := mrbox.NewComposer().Compose(ctx, mrbox.Input{
//	    BaseDir:  "./game",
//	    AudioURL: os.Getenv("MRBOX_AUDIO_URL"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// # Bundle
//
// A bundle directory holds three files with fixed names:
//
//	index.html   template document
//	styles.css   stylesheet
//	game.js      script
//
// A missing or unreadable file aborts composition; no partial result is
// returned.
//
// # Composition
//
// Three literal markers in the template are replaced, in this order, each
// replacement applied to every occurrence:
//
//  1. <link rel="stylesheet" href="./styles.css" /> becomes <style>{styles.css}</style>
//  2. <script src="./game.js"></script> becomes <script>{game.js}</script>
//  3. src="./two_tigers.mp3" becomes src="{audio URL}"
//
// A marker that does not appear in the template is skipped silently. The
// Result reports how many times each marker was replaced, so callers can
// decide whether a miss is a warning or an error. WithStrictMarkers turns a
// miss into ErrMarkerMissing.
//
// The audio URL is an explicit input. An empty value resolves to
// DefaultAudioURL; it is never validated.
//
// Composition is deterministic: the same bundle and audio URL always produce
// byte-identical output. Nothing is cached between calls.
//
// # Snapshots
//
// Snapshotter renders a composed document in headless Chrome (go-rod) and
// returns a PNG screenshot at the host frame size:
//
//	shot := mrbox.NewSnapshotter()
//	defer shot.Close()
//	png, err := shot.Snapshot(ctx, result.HTML)
package mrbox
