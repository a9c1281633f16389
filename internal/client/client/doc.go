// Package client contains client-side building blocks for contactbook.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the remote contact service (see the
//     Client interface): paginated listing, lookup by id and by exact name,
//     and the contact and phone mutations.
//  2. A GraphQL implementation (see GraphQLClient) that sends one request per
//     call with a per-request timeout and maps service failures to the
//     sentinel errors of package common.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Unique violations on phone numbers become common.ErrPhoneAlreadyUsed.
// A vanished contact on update becomes common.ErrStaleContact and a missing
// phone row on edit common.ErrInconsistentEdit. Everything else wraps
// common.ErrNetwork.
//
// Concurrency & Contexts
//
// GraphQLClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
