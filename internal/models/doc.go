// Package models defines the record shapes of the review archive.
//
// Raw provider rows ([ReviewRow], [RankRow]) are normalized at ingestion into the canonical
// in-memory records:
//   - [Review] : one archived write-up, artist upper-cased, color assigned once
//   - [RankEntry] : one row of an annual best-of list, rank 0 being the year's overview
//   - [MatchedRankItem] : a rank bound to a real or placeholder [Review]
//   - [About] : the site and profile descriptions
//
// [NewCollection] produces the collection every other package relies on: ordered by date
// descending with undated reviews last. The collection is never mutated after ingestion.
package models
