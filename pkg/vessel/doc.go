// Package vessel defines the shape parameters and profile curves for Amphora.
// A Parameters record describes a hollow vessel (outer wall, inner cavity,
// base, lip). Clamp normalizes a record at the ingestion boundary; every
// derived quantity and profile sample downstream assumes a clamped record.
package vessel
