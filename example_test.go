package mrbox_test

import (
	"context"
	"fmt"

	mrbox "github.com/alnah/go-mrbox"
)

func ExampleComposeBundle() {
	bundle := mrbox.Bundle{
		Template:   `<html><link rel="stylesheet" href="./styles.css" /><script src="./game.js"></script><audio src="./two_tigers.mp3"></audio></html>`,
		Stylesheet: "body{color:red}",
		Script:     "console.log(1)",
	}

	result, err := mrbox.ComposeBundle(context.Background(), bundle, "https://cdn.example/tigers.mp3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result.HTML)
	// Output:
	// <html><style>body{color:red}</style><script>console.log(1)</script><audio src="https://cdn.example/tigers.mp3"></audio></html>
}

func ExampleResult_Missing() {
	bundle := mrbox.Bundle{Template: `<body><script src="./game.js"></script></body>`, Script: "start()"}

	result, _ := mrbox.ComposeBundle(context.Background(), bundle, "")
	for _, s := range result.Substitutions {
		fmt.Printf("%s: %d\n", s.Name, s.Count)
	}
	fmt.Println("missing:", result.Missing())
	// Output:
	// stylesheet: 0
	// script: 1
	// audio: 0
	// missing: [stylesheet audio]
}

func ExampleWithStrictMarkers() {
	composer := mrbox.NewComposer(mrbox.WithStrictMarkers(true))

	_, err := composer.ComposeBundle(context.Background(), mrbox.Bundle{Template: "<html></html>"}, "")
	fmt.Println(err)
	// Output:
	// template marker not found: stylesheet, script, audio
}
