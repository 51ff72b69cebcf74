/*
Package codec reads and writes nested definition representations as YAML,
JSON or HCL documents.

Decoded documents are normalized so the visitor sees the same shapes
whatever the format: integer literals become int and float literals
float64, and the "children" attribute of a definition, when written as a
mapping, becomes an ordered list of single-key maps. Keys named "children"
elsewhere are plain data. YAML and HCL keep the document order of children;
JSON objects are unordered, so JSON children mappings are listed by name.
HCL has a single number type, so integral HCL numbers always decode to int.

The HCL form uses one block per definition:

	definition "root" {
	  description     = "d"
	  requiredState   = false
	  priority        = 0
	  hasDefaultValue = false
	  defaultValue    = null

	  children {
	    definition "leaf" {
	      ...
	    }
	  }
	}
*/
package codec
