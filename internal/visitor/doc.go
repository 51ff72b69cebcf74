/*
Package visitor converts whole definition trees to and from their nested
representation.

The nested representation maps each definition name to its flat
representation. A container's children are stored under the "children" key
as an ordered list of single-key nested maps:

	root:
	  description: d
	  requiredState: false
	  priority: 0
	  hasDefaultValue: false
	  defaultValue: null
	  children:
	    - leaf:
	        ...

The parent key never appears in the nested form; the nesting carries it.
Parsing materializes children before their container, then instantiates each
entry through a factory.Factory and populates it with FromArray.
*/
package visitor
