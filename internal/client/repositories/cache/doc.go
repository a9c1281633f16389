// Package cache is the persistent local cache of the contact lists.
//
// The cache holds two named slots, "contacts" (regular list) and
// "favcontacts" (favorite list), each a JSON-serialized sequence of
// models.Contact. It is read once at startup and overwritten after every
// mutation of the in-memory lists; entries are never merged, the last write
// wins.
//
// SQLiteRepository stores the slots in the cache table over a dbx.DBTX.
// SavePartition writes both slots in one transaction so the two lists are
// never persisted half-updated.
package cache
