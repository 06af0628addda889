// Package route asks a language model to optimize a flight route.
//
// Optimize builds a prompt listing every waypoint and constraint, sends it
// through the ollama client, and decodes the reply in two explicit steps:
//
//   - decodeStrict accepts a JSON array of points, or an object carrying the
//     array under "points", "route" or "optimizedRoute"
//   - parseFallback scans "Lat: .., Long: .., Alt: .." lines when no usable
//     JSON is present
//
// The returned Result records which step produced the points and carries the
// great-circle length of each leg. Transport failures are reported as a
// single "route optimization failed" error; malformed model output never is.
package route
