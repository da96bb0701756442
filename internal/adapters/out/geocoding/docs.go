// Package geocoding provides ports.GeoOracle implementations.
//
// GooglePlacesOracle calls the Find Place from Text endpoint with retry and
// backoff on transient failures. StaticOracle answers from a fixed city table
// and is used when no API key is configured. CachedOracle wraps either of them
// with a ports.GeocodeCache.
package geocoding
