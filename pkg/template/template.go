// Package template declares the engine seam documentation backends render
// through, mirroring the github.com/goliatone/go-template engine contract so
// engines can be swapped without touching the backends.
package template

import (
	"io"
)

// TemplateRenderer renders named or inline templates against a data context.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
