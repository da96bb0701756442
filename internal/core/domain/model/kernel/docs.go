// Package kernel contains the shared value objects of the pickup domain:
// identifiers (UUID), postal addresses (Address) and geographic points
// (GeoPoint) together with the great-circle distance between them.
package kernel
