// Package memory provides in-memory implementations of driven ports that
// hold state only for the lifetime of the process.
package memory
