// Package textutil holds the small text helpers shared by the transcript
// analyzers and the run workspace: case folding, word and sentence splitting,
// rune-safe slicing, and filesystem-safe tokens.
package textutil
