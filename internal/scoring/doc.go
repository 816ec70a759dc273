// Package scoring turns analyzer output into four category scores and a single
// final score that stays meaningful when some evidence is missing.
//
// # Categories
//
// Voice & Delivery (0.30) and Content Quality (0.30) require detected speech.
// Confidence & Body Language (0.25) requires a detected face and pose
// landmarks. Engagement (0.15) blends whichever of its components have
// evidence, renormalizing their weights.
//
// # Final Score
//
// A category qualifies when its evidence flag holds and its score is non-null.
// With fewer than two qualifying categories the final score, grade, and rating
// are null and the result carries a warning. Otherwise the qualifying weights
// are rescaled to sum to one before combining.
//
// Every function here is pure. Missing data never produces an error; it
// produces a skipped category with a reason.
package scoring
