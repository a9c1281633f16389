// Package cli provides the interactive contactbook command-line client.
//
// It wires configuration, the local cache, the remote contact service and an
// interactive REPL. Typical flow: restore the lists from the cache, fetch the
// first page, then execute user commands until exit.
//
// Key features:
//   - List / page through contacts, favorites first
//   - Search locally (search) or on the server (find)
//   - Favorite / unfavorite contacts
//   - Add, edit and delete contacts
//   - Resume or abandon an edit that failed half way
//
// Errors are shown in the prompt through a notify.Notifier and disappear on
// their own after a few seconds.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
