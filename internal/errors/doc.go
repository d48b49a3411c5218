// Package errors provides structured error handling for sheet-api.
//
// Errors carry a code, a message, an optional cause, and optional metadata.
// The code maps directly to an HTTP status, so the REST handler layer can
// render any error returned by an orchestrator or repository without
// inspecting it.
//
// Creating errors:
//
//	err := errors.NotFound("character not found")
//	err := errors.InvalidArgumentf("unknown equipment slot %q", slot)
//
// Wrapping:
//
//	if err := repo.Get(ctx, in); err != nil {
//	    return nil, errors.Wrap(err, "failed to get character")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) { ... }
//	status := errors.GetCode(err).HTTPStatus()
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
package errors
