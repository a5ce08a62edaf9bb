// Package archive derives the read-only projections every view renders from the review collection.
//
// All functions are pure: they never mutate their input and always return fresh slices, so the
// same collection snapshot can be shared across views and goroutines.
//
//   - [Group] : alphabetical sections of artists, each holding their reviews ordered by title
//   - [Search] : case-insensitive substring filter by [Mode]
//   - [Related] : same-artist reviews followed by cross-referencing reviews
//   - [Match] : binds an annual ranking to reviews, with placeholders for unreviewed entries
//   - [Shuffle] : seeded permutation for the home view's pick-up list
//
// String ordering uses [collate] so artist and title sorting follows locale-aware rules rather
// than byte order.
package archive
