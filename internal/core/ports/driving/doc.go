// Package driving defines the inbound ports of the comparison core,
// implemented by services and called by the CLI and HTTP adapters.
package driving
