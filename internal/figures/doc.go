// Package figures renders study results to image files with gonum/plot.
//
// Three figures are produced, named after the quantities they show:
//
//	diagrame_phase.<fmt>  phase portrait of each scheme against the analytical orbit
//	hamiltonien.<fmt>     H/H0 against t/T0
//	erreur.<fmt>          log-log L2 error against dt/T0 with its power-law fit
package figures
