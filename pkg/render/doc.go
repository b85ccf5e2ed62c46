// Package render groups the visual outputs of tracesplit.
//
// Rendering of the traces themselves is left to charting front ends; the
// subpackages here draw diagrams about a split:
//
//   - [fanout]: which output traces each input trace was split into, as
//     DOT, SVG or PNG through Graphviz
package render
