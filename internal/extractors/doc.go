// Package extractors provides implementations of the Extractor
// interface for the supported document formats, plus the
// extension-keyed registry that dispatches between them.
//
// Extractors are registered with the Registry at startup.
package extractors
