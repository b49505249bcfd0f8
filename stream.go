package hbars

import "io"

// Stream compiles source with the package's default Engine and
// renders it against data straight to w, for one-shot uses that don't
// need a persistent Template or custom Engine.
func Stream(name, source string, data any, w io.Writer) error {
	tpl, err := Compile(name, source)
	if err != nil {
		return err
	}
	return tpl.RenderTo(w, data)
}
