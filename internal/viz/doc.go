// Package viz renders study results for the terminal.
//
//   - [EnergyPlot], [ErrorPlot]: asciigraph line charts
//   - [PhaseCanvas]: Braille phase portrait built on [Canvas]
//   - [Table]: lipgloss-styled result tables
//   - [Theme]: per-scheme colors shared with the live viewer
package viz
