// Package persist reads prior parameter values back out of artifact files
// that already exist on disk.
//
// A Reader picks a parser by file extension. Parse failures never escape:
// they come back as a Result with StatusUnreadable so the caller can log
// and fall back to defaults.
package persist
