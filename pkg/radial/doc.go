// Package radial computes the radial dendrogram layout of a hierarchy.
//
// [Compute] turns an ordered [hierarchy.Node] into a fresh [Layout]; the
// hierarchy itself is never modified. Every node receives:
//
//   - Angle: a cluster layout over 360 degrees. Leaves are evenly spaced in
//     traversal order, each internal node sits at the mean angle of its
//     children.
//   - Radius: the cumulative branch length from the root, scaled so that
//     the deepest path ends exactly at the inner radius.
//   - ClusterRadius: the depth-derived radius of a plain cluster layout,
//     used when branch lengths are ignored.
//   - Color: the color of the nearest node (itself included) whose name is
//     in the [ColorDomain], or empty when there is none.
//
// Layout never fails. Malformed (NaN) branch lengths count as 0, the root's
// own length is ignored, and a tree whose deepest path has length 0 gets a
// scale of 0 instead of dividing by zero.
package radial
