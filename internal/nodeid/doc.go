/*
Package nodeid provides the addressing scheme for definitions inside a
definition tree.

An address is a dot-separated sequence of definition names from a root down
to the addressed node, e.g. `database.pool.size`. Because siblings may share a
name, a segment can carry a zero-based index selecting among same-named
siblings: `listeners.port[1]`.

This package only formats and parses addresses; resolving them against a tree
is done by the definition package.
*/
package nodeid
