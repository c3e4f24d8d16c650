// Package assets holds the shaders and fonts compiled into the binary.
package assets

import (
	_ "embed"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	//go:embed shaders/renderer2d.vert
	QuadVertexShader string
	//go:embed shaders/renderer2d.frag
	QuadFragmentShader string
)

// MainFont is the body face, HeadingFont the face for H1/H2.
var (
	MainFont    = goregular.TTF
	HeadingFont = gobold.TTF
)
