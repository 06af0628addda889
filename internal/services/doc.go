// Package services defines shared utilities consumed by the route and outlier
// pipelines and the external model integration.
//
// Key responsibilities:
//   - Context helpers that stamp request identifiers and operation names for
//     logging and history records.
//   - Structured error markers plus the Wrap and Failed helpers that keep
//     transport failures distinguishable from configuration mistakes.
//
// Use these helpers when wiring new model-backed operations so operational
// behaviour (error shape, observability) stays uniform across utilities.
package services
