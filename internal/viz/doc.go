// Package viz renders line parameters and field solutions for the
// terminal.
//
//   - [Report]: styled table of R, L, G, C and the derived quantities
//   - [PotentialMap]: shaded character map of the potential
//   - [Canvas]: Braille canvas used for the cross-section outline
//   - [SweepPlot]: asciigraph chart of one quantity over a sweep
package viz
