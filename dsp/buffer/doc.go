// Package buffer provides a planar multichannel sample buffer with a fixed
// capacity and a variable length, plus an [Arena] of equally shaped working
// buffers.
//
// Capacity is decided once, outside the audio thread. Changing the length of
// a block, copying, clearing and summing never allocate, so buffers can be
// reused inside real-time processing callbacks.
package buffer
