// Package dataset supplies inputs for the detect and route commands: the
// built-in sample series and route, CSV and JSON file loaders, and parsing
// of repeated key=value flags into prompt parameters.
//
// CSV files must have a header row. Series files need "timestamp" and
// "value" columns; route files need "latitude" and "longitude" and may carry
// "altitude" (the short forms lat, lon/lng and alt are accepted too). JSON
// files hold either a bare array of points or an object with "points" plus
// "parameters" (series) or "constraints" (route).
package dataset
