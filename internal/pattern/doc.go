// Package pattern holds the lexical heuristics used to find expressions and
// enclosing functions in source text.
//
// Nothing here parses the host language. The Grammar strategy answers three
// narrow questions (is this rune part of an identifier, does this line define
// a function, how deep is this line indented) and the bracket helpers match
// (), [] and {} pairs while skipping quoted strings and comments. Malformed
// code produces best-effort answers, never errors.
package pattern
