// Package filter removes text that a list of strings has in common.
//
// Every strategy takes a threshold: only shared runs strictly longer than threshold
// runes are removed. Inputs are never modified; each call returns a new slice of the
// same length and order.
package filter
