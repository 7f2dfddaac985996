// Package reconcile coordinates translation synchronization between a local
// workspace and a remote translation service.
//
// The Engine drives three workflows over every configured language:
//
//  1. Push: backfill non-base languages with base-language keys they lack,
//     fetch the remote state, and submit only the gap-filling delta per
//     language (base language first, the rest in code order).
//  2. Pull: fetch the remote state and write the merge of each local file
//     with its remote tree back to the workspace.
//  3. Download: fetch the remote state and write the remote trees verbatim
//     to a freshly cleared preview directory.
//
// # Collaborators
//
// The engine never talks to the network or the file system directly. It
// consumes a Remote (manifest, blob fetch, delta upload) and a Workspace
// (load, read, write, reset). Optional Snapshotter sinks receive every
// fetched remote tree and an optional Recorder receives the final Summary.
//
// # Failure Isolation
//
// A failure for one language is recorded in its LanguageReport and the run
// continues. Only two errors end a workflow: ConfigError before any work is
// done, and NoProgressError when no language succeeded.
//
// # Concurrency
//
// Blob downloads are read-only and fan out with a bounded errgroup;
// identical locators are fetched once per run. Uploads are strictly
// sequential.
package reconcile
