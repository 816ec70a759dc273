// Package analysis defines the measurement documents produced by the audio,
// text, and video analyzers and embedded verbatim in the persisted report.
//
// # Shape Contract
//
// Every document has a fixed key set. Numeric measurements are pointers so an
// unavailable value serializes as null rather than disappearing. Skipped
// stages use the placeholder constructors (AudioPlaceholder, TextPlaceholder,
// VideoPlaceholder), which populate every key with null numerics and the
// label "N/A"; clients never need to special-case a missing key.
//
// # Labels
//
// Label is null when a measurement was evaluated, "N/A" when the stage was
// skipped, and "Not Evaluated" when the stage ran but lacked evidence for that
// particular metric (for example eye contact with no detected face).
package analysis
