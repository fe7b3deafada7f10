// Package driven defines the outbound ports of the comparison core:
// text extraction, input file storage and report writing. Adapters
// implement these interfaces; services depend on them.
package driven
