//go:build headless
// +build headless

package graphics

import "fmt"

// NewEbitengineDisplay is unavailable in headless builds.
func NewEbitengineDisplay(config Config) (Display, error) {
	return nil, fmt.Errorf("ebitengine backend not available in headless build")
}
