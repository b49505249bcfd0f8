// Package hbars implements a Handlebars/Mustache-lineage template engine.
//
// A template source containing literal text and expression tags
// ({{name}}, {{{raw}}}, {{#block}}...{{/block}}, {{!-- comment --}},
// {{{{raw}}}}...{{{{/raw}}}}) is compiled into an AST with Compile, then
// rendered against a JSON-like data value with Render/RenderTo.
//
// A tiny example:
//
//	tpl, err := hbars.Compile("greeting", "Hello {{name}}!")
//	if err != nil {
//	    panic(err)
//	}
//	out, err := tpl.Render(map[string]any{"name": "Ada"})
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(out) // Output: Hello Ada!
package hbars
