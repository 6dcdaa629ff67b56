// Package beautify renders values as JSON text with a line width budget.
// Every array and object is kept on one line when it fits and is expanded to
// one member per line otherwise, while staying faithful to JSON.stringify:
// replacer functions and allow-lists, per-key representation hooks, escaping
// and non-finite numbers.
//
// Documents are built from Value, a tagged union of the JSON kinds plus an
// absent kind for things JSON cannot express. ValueOf converts ordinary Go
// values and Decode reads JSON text while keeping member order. CompactTo
// strips whitespace from a stream of documents without decoding them.
//
// Basic usage:
//
//	out, err := beautify.Beautify(map[string]any{"a": []int{1, 2, 3}}, nil, 2, 40)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out) // { "a": [ 1, 2, 3 ] }
//
// Typed options:
//
//	v, err := beautify.Decode(os.Stdin)
//	if err != nil {
//		log.Fatal(err)
//	}
//	opts := &beautify.Options{Indent: "\t", Width: 100, Replacer: beautify.AllowList{"id", "name"}}
//	if err := beautify.RenderTo(os.Stdout, v, opts); err != nil {
//		log.Fatal(err)
//	}
//
// Layout: with an indentation unit set, a non-empty container at
// indentation gap G renders as "[ m1, m2 ]" when
// len(G+indent) + len("m1, m2") + 4 <= width, and as
//
//	[
//	<G+indent>m1,
//	<G+indent>m2
//	<G>]
//
// otherwise, lengths counted in UTF-16 code units as JavaScript does. Width
// 0 therefore always expands. Without an indentation unit
// the output is compact and width is ignored. Empty containers are always
// [] and {}.
//
// Rendering recurses once per nesting level and does not detect cycles
// introduced through hooks; such input exhausts the stack.
package beautify
