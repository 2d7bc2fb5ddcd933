// Package errors provides structured errors for bun-dungeon.
//
// Errors carry a Code, a user-facing message, an optional cause and metadata:
//
//	err := errors.NotFoundf("session %s not found", id).
//	    WithMeta("session_id", id)
//
// Wrapping keeps the code of an *Error cause and defaults to Internal for
// anything else:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load game")
//	}
//
// Check errors with the Is* helpers. GetMessage returns the text to show a
// player. Code.ExitCode maps a code to a process exit status for the CLI.
//
// Config validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Data == nil {
//	    vb.RequiredField("Data")
//	}
//	return vb.Build()
//
// # Layer guidelines
//
// The game engine reports refused requests (unaffordable item, locked ability)
// as result values with a message, never as errors. It returns DataLoss when
// static data is broken.
//
// Repositories return NotFound for missing sessions and Internal for storage
// failures, with the session id in metadata.
//
// The orchestrator validates input (InvalidArgument), checks preconditions
// such as being in combat (FailedPrecondition) and wraps repository errors.
package errors
