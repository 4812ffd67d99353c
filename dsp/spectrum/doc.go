// Package spectrum measures how the energy of a signal is distributed over
// frequency. It is used to check crossover band separation and by the
// render host's analysis table.
package spectrum
