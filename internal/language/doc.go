// Package language normalizes language codes for transcription and reports.
//
// Inputs may be ISO 639-1 or 639-2 codes, BCP 47 tags such as "en-US", or
// English language names. Parsing and display names come from
// golang.org/x/text/language and its display tables.
package language
