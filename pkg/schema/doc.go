// Package schema validates values against field format kinds and collects
// structural configuration failures. Validation errors aggregate so a
// malformed template reports every problem in one pass instead of failing
// on the first.
package schema
