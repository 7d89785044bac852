// Package cascade simulates falling character trails ("digital rain").
//
// A Matrix owns one optional Strain per column. Every call to Matrix.Tick
// advances the strains, randomly spawns new ones into empty columns and
// rasterizes the result into a height x width grid of caller-defined cells.
// The package does no I/O and keeps no timers: the caller decides how often
// to tick and how a cell looks.
//
// A Matrix is not safe for concurrent use.
package cascade
