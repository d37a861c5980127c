// Package plot defines the rendering contract used by the animation and the
// renderers that satisfy it.
//
// A [Renderer] receives ordered samples and a [Config] and returns one string
// per output row. Two engines are registered:
//
//   - [Unicode]: axes, eighth-block fill and braille lines
//   - [ASCIIGraph]: line charts drawn by github.com/guptarohit/asciigraph
//
// Callers that cannot trust a renderer should pass its output through
// [Normalize] before using it.
package plot
