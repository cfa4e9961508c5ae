//go:build tinygo || !cgo

package viewer

import "errors"

// Run opens a window and renders the still life. It requires CGo.
func Run(cfg Config) error {
	return errors.New("require cgo for UI rendering")
}
