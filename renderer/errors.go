package renderer

import "errors"

var (
	ErrSceneNotDefined = errors.New("renderer: no scene defined")
	ErrFilmNotDefined  = errors.New("renderer: no film defined")
	ErrClosed          = errors.New("renderer: session closed")
)
