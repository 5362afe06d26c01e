// Package geometry describes 2D transmission-line cross-sections.
//
// A [Geometry] is a rectangular bounding box filled with a default
// [Material] and an ordered list of rectangular [Region] values. Point
// lookup scans regions newest first, so later regions shadow earlier ones
// where they overlap:
//
//	g, _ := geometry.New(5e-3, 3e-3, geometry.Air())
//	_ = g.AddRegion(geometry.Region{XMax: 5e-3, YMax: 1.6e-3, Material: fr4})
//	m := g.MaterialAt(2.5e-3, 1e-3) // fr4
//
// [Microstrip] and [Stripline] build the two common stackups.
package geometry
