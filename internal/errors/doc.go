// Package errors provides structured errors for the ironsworn content tools.
//
// Errors carry a Code, a message, an optional cause and metadata. Wrapping
// keeps the cause reachable through errors.Is and errors.As, so a fetch
// failure surfaced by the importer still exposes the underlying network
// error to callers.
//
// # Basic Usage
//
//	err := errors.Unavailablef("fetch %s: status %d", url, status)
//	err := errors.InvalidArgument("output dir is required")
//
// Wrapping errors:
//
//	if err := writer.Write(ctx, name, doc); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", name)
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Client == nil {
//	    vb.RequiredField("Client")
//	}
//	return vb.Build()
//
// # Error Codes
//
//   - InvalidArgument: bad configuration or input
//   - NotFound: missing snapshot, unknown identifier or stat
//   - Unavailable: network failure or non-2xx response from the content source
//   - DataLoss: a fetched body that is not JSON
//   - FailedPrecondition: a document is missing from a fetched set
//   - Internal: anything else
package errors
