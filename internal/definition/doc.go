/*
Package definition models configuration definitions: named nodes carrying a
description, a required flag, a priority and an optional default value,
organized into parent/child trees.

# Nodes and arenas

Every Definition lives in an Arena and is identified by a Handle. Parent and
child edges are stored as handles, so identity is an integer comparison and
two nodes sharing a name are still distinct. A Definition is either a leaf
or a container (see Kind); only containers own children.

	arena := definition.NewArena()
	root := arena.NewContainer("database")
	pool := arena.NewDefinition("pool")
	pool.SetPriority(10)
	if err := root.AddChild(pool); err != nil {
	    return err
	}

Parent and child links are kept consistent from both sides: AddChild sets
the child's parent, SetParent registers the node with its new parent and
detaches it from the old one.

# Flat representation

Each node converts to and from a flat map through its mapping: an ordered
list of Bindings, one per key, each holding a getter, a setter and the value
types the key accepts. The mapping is assembled from the attribute bundles a
node carries, in this order:

	defaultValue, hasDefaultValue, description, requiredState, priority,
	parent, children (containers only), then bindings declared with WithBindings.

ToArray evaluates every getter; FromArray validates the input against the
schema derived from the mapping, then evaluates every setter. Both stop at
the first failing key.

# Concurrency

Definitions and arenas are not safe for concurrent use. A tree must be
confined to a single goroutine, or guarded externally, since a link update
touches both the child's parent handle and the parent's child set.
*/
package definition
