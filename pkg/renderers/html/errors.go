package html

import "errors"

var (
	// ErrNoController is returned when Render is called without a controller.
	ErrNoController = errors.New("html: controller is required")
	// ErrNoTemplates is returned when the renderer has no template source.
	ErrNoTemplates = errors.New("html: need to provide either templates dir or fs.FS")
)
