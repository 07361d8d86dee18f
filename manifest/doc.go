// Package manifest reads bulk asset registrations from YAML documents.
//
// A manifest lists assets by key, path and optional load style:
//
//	version: 1
//	assets:
//	  - key: tank
//	    path: models/tank.glb
//	    style: eager
//	  - key: grass
//	    path: textures/grass.png   # style defaults to lazy
//
// Decoding produces ordered registrations ready for the cache's Apply.
// Duplicate keys are allowed; a later row overwrites an earlier one when
// applied, matching cache semantics.
package manifest
