// Package rules implements the sheet's calculation semantics: the cost and
// scaling expression language, ratio parsing, equipment slot encoding,
// summon stat derivation and template field resolution.
//
// Every function here is pure. Malformed input never returns an error; it
// degrades to a neutral value (0, empty, or the raw text carried through) so
// a half-typed formula can never wedge the sheet.
package rules
