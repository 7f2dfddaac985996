// Package translations wires configuration into the reconciliation engine.
//
// A Service owns the collaborators of one invocation: the remote client, the
// local workspace and the optional snapshot and history sinks. Optional sinks
// that cannot be reached are logged and left out so a sync still runs.
//
// # Usage
//
//	svc, err := translations.New(ctx, cfg, log)
//	summary, err := svc.Push(ctx, translations.PushRequest{DryRun: true})
package translations
