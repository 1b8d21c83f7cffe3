// Package driver holds the pieces of a compiler driver that sit around a
// toolchain: the input and action model, command descriptors, the
// compilation that collects them and the pass that turns actions into
// commands.
package driver
