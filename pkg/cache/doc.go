// Package cache keeps a byte image of a device's parameter registers
// and moves it over the bus.
//
// A Cache pairs an address table with the committed register image.
// ReadWholly refreshes the whole image with the fewest block reads and
// deserializes it into a parameter set. UpdatePartially diffs a
// desired parameter state against the image and writes only the
// quadlets that changed, committing each successful write immediately
// so a failure partway through leaves the cache agreeing with the
// device.
package cache
