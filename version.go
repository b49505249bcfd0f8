package hbars

// Version is the engine's version string.
const Version = "v1"

// Must panics if a Compile call failed. Useful for package-level
// template variables:
//
//	var base = hbars.Must(hbars.Compile("base", "Hello {{name}}"))
func Must(tpl *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return tpl
}
