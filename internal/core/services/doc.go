// Package services implements the comparison core: the token sequence
// matcher and the comparison service that assembles score matrices and
// drives report rendering.
package services
