// Package engine composes the externally trained scaler, classifier and
// label decoder into a single predict call.
//
// The artifacts are loaded once at startup and never mutated. The feature
// registry is the column schema for all three: New refuses artifacts whose
// column count (or recorded column names) disagree with it.
package engine
