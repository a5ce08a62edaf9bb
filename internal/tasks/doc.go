// Package tasks runs long archive operations with real-time progress reporting.
//
// # Export
//
// [Exporter.Export] writes a static snapshot of an archive to a directory:
//
//  1. Listings: recent.ext, library.ext, about.ext and best/<year>.ext
//  2. Reviews: reviews/<id>.ext, one file per review, written by a worker pool
//  3. Covers: covers/<id>.<type>, downloaded through a rate limiter when [ExportOpts.Covers] is set
//  4. Manifest: export_manifest.json summarizing every file and failure
//
// A failed review or cover is recorded in the result and does not stop the export.
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Sends use select with default,
// so a slow or absent reader never blocks the export.
package tasks
