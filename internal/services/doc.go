// Package services defines the [Provider] interface for the published documents the archive is read
// from and implements it over HTTP with [SheetProvider].
//
// # Provider Interface
//
// A provider loads three payloads: the review sheet, the annual ranking sheet and the about
// document. Providers return raw rows; validation and derivation happen in [Load] and the
// models package.
//
// # Sheet Provider
//
// [SheetProvider] fetches spreadsheets published as CSV (first row is the header, matched
// case-insensitively) and a document exported as plain text. Each URL comes from the
// [source] section of the config file.
//
// # Loading
//
// [Load] fetches the three payloads concurrently and never fails: each payload that cannot be
// fetched or parsed is replaced locally and logged at warn level.
//   - reviews: empty collection
//   - ranks: empty ranking
//   - about: [models.PlaceholderAbout]
//
// # Errors
//
// Providers wrap the sentinels from the shared package:
//   - [shared.ErrMissingConfig] : no URL configured for a payload
//   - [shared.ErrFetchFailed] : the request could not be made or read
//   - [shared.ErrUnexpectedStatus] : non-2xx response
//   - [shared.ErrMalformedPayload] : the CSV could not be parsed
package services
