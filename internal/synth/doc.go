// Package synth generates documentation comments for undocumented
// declarations and appends the processing marker.
//
// Templates are keyed by declaration family ("function", "class", "module")
// and interpolate named placeholders: {name}, {args}, {returns}, {attrs},
// {description}. The description is derived from the unit's extracted facts.
//
// Synthesis is purely additive text insertion: declarations that already
// carry documentation are never touched, and nothing outside comment
// positions is modified. The equivalence guard independently verifies that
// property for every candidate before it reaches disk.
package synth
