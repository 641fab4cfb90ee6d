package gfx

import (
	"fmt"
)

// Version is a graphics API version
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Config holds the window and context settings
type Config struct {
	Title  string
	Width  int
	Height int

	// APIVersion is the requested OpenGL context version
	APIVersion  Version
	CoreProfile bool
	VSync       bool

	// Debug enables API validation where the backend supports it
	Debug bool

	// Backend is the registered name of the backend to use
	Backend string
}

// DefaultConfig returns the configuration of the sprite window
func DefaultConfig() Config {
	return Config{
		Title:       "GFX-SPRITE-2D",
		Width:       640,
		Height:      480,
		APIVersion:  Version{Major: 3, Minor: 3},
		CoreProfile: true,
		VSync:       true,
		Backend:     "gl",
	}
}

// Validate checks the configuration for values no backend can satisfy
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.APIVersion.Major < 1 {
		return fmt.Errorf("invalid api version %s", c.APIVersion)
	}
	if c.Backend == "" {
		return fmt.Errorf("no backend selected")
	}
	return nil
}
