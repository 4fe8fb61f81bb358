/*
Package rtreestar implements a generic, in-memory R*-tree spatial index: an
ordered, balanced tree of minimum bounding rectangles (see the mbr package)
storing user-provided payloads keyed by their current bounding rectangle.

It supports insertion, deletion, MBR-guided search via predicates on
internal and leaf rectangles, and re-indexing, and it maintains a secondary
insertion-ordered doubly-linked traversal of every stored payload
independent of the tree's shape.

This is a generalization, to an arbitrary payload type and dimension count,
of a 2-D <lat,long> R*-tree that stored boat positions keyed by MMSI,
itself an implementation of the R*-tree described in:

	Beckmann, N., Kriegel, H.-P., Schneider, R., & Seeger, B. (1990).
	The R*-tree: An Efficient and Robust Access Method for Points and
	Rectangles. ACM SIGMOD.

See DESIGN.md for the full grounding of each part of this package.

The package is single-threaded: Tree has no internal synchronization, and
callers must serialize their own access, the same division of
responsibility the original boat tracker used between its concurrent feed
pipeline and its single-threaded tree.
*/
package rtreestar
