// Package encode renders the visible part of a document as indented,
// JSON like text.
//
// Expanded containers show their entries, collapsed ones render as {...}
// or [...] followed by a count. Array items outside the expanded sections
// are folded into "..." lines:
//
//	{
//	  "list": [
//	    "a",
//	    ... // 150 hidden [100,250)
//	  ]
//	}
//
// With EncodeCarets every line gets a gutter in which the line holding
// the caret is marked with ">".
package encode
