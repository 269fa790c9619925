// Package syncer implements the sequential fetch-and-persist batches.
//
// [Syncer.Run] walks a half-open ID range in ascending order, fetching and
// persisting one record at a time. [Syncer.StoreSprites] backfills cached
// images for stored records. Both continue past per-item failures: each
// failure is logged and recorded as an [ItemResult] in the returned
// [Report], and never aborts the batch.
package syncer
