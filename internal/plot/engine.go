package plot

import (
	"fmt"
	"sort"
)

const (
	EngineUnicode    = "unicode"
	EngineASCIIGraph = "asciigraph"
)

var engines = map[string]func() Renderer{
	EngineUnicode:    func() Renderer { return Unicode{} },
	EngineASCIIGraph: func() Renderer { return ASCIIGraph{} },
}

// New returns the renderer registered under name.
func New(name string) (Renderer, error) {
	fn, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownEngine, name, Engines())
	}
	return fn(), nil
}

func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
