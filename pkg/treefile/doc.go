// Package treefile loads declarative applications from YAML.
//
// A tree file names a root component and defines each component as initial
// state plus a node tree:
//
//	name: counter
//	root: App
//	components:
//	  App:
//	    state:
//	      count: 0
//	    render:
//	      tag: div
//	      children:
//	        - tag: p
//	          text: "count: {{ count }}"
//	        - component: Footer
//	  Footer:
//	    render:
//	      tag: footer
//	      text: made with vrender
//
// Text may interpolate state keys with {{ key }}. A node with if: key
// renders without text while that state value is falsy; it keeps its shape
// so the mounted tree can be patched in place. State lives in signals held
// by a Store, so writes through the Store re-render mounted components.
package treefile
