// Package textanalysis scores a transcript for grammar, repetition, and
// presentation structure using lightweight heuristics.
package textanalysis
