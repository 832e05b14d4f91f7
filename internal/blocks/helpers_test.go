package blocks

import "github.com/roach88/blockrt/internal/block"

// catch runs fn and returns a ConfigError or PreconditionError panic as an
// error.
func catch(fn func()) (err error) {
	defer block.Recover(&err)
	fn()
	return nil
}
