// Package utils provides small shared helpers for the transport catalogue.
//
// It contains:
//   - Coordinates and great-circle distance (backed by github.com/golang/geo)
//   - Float comparison helpers shared by the router and the renderer
package utils
