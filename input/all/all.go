// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/katvel/shapewave/input/ffmpeg"
	_ "github.com/katvel/shapewave/input/parec"
)
