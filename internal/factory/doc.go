// Package factory materializes definitions from flat candidate
// representations.
//
// A Factory declares the exact key set it accepts, with the allowed types of
// each key, and builds an empty definition of its kind from a matching
// candidate. The visitor then populates the definition through FromArray.
// Factories are combined in a Chain, which asks its members in order and
// delegates to the first one that supports the candidate.
package factory
