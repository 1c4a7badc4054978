package utils

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Returns the average of all given numbers n
func Average(n ...int) int {
	// Sum all numbers
	var sum int
	for _, num := range n {
		sum += num
	}

	// Divide sum by total numbers
	return sum / len(n)
}

// Clamp snaps x into [lo, hi]
func Clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampByte clips a float channel value to [0, 255]
func ClampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Renders block with the given color as its background.
// The renderer decides which escape sequences, if any, are emitted.
func ColoredBlock(r *lipgloss.Renderer, block string, red int, green int, blue int) string {
	bg := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))
	return r.NewStyle().Background(bg).Render(block)
}
