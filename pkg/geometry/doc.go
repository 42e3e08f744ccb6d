// Package geometry turns positioned nodes into SVG path geometry.
//
// Every edge of a radial dendrogram is drawn by [LinkStep]: a circular arc
// at the parent's radius from the parent's angle to the child's angle,
// followed by a radial line out to the child's radius. Leaves additionally
// get an extension from their own radius out to the common outer ring.
//
// Two modes choose which radius is used for every node:
//
//   - [ModeVariable] uses the cumulative branch length (a phylogram).
//   - [ModeConstant] uses the depth-derived cluster radius (a cladogram).
//
// All functions are pure: the same layout and mode always produce the
// same paths, byte for byte.
package geometry
