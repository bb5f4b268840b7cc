// Package addrspace models the sparse register layout of a parameter
// set as an ordered table of address ranges.
//
// A Table maps between two views of the same data: the device view
// (absolute register offsets, possibly with gaps) and the image view
// (a dense byte slice holding the ranges back to back). Serializers
// work on the image; transaction code uses the table to translate
// image positions to device offsets and to coalesce neighbouring
// ranges into batched transfers.
package addrspace
