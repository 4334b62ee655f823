// Package fragment defines the atomic lines a poem is assembled from and the
// sources that supply them. A Sequence is an ordered list of fragments; the
// built-in House source yields the twelve lines of "The House that Jack
// Built", starting at the cat and ending on the dog. Sources hand out fresh
// copies so callers can reorder or slice without aliasing.
package fragment
