// Package errors provides the structured errors used by the check
// pipeline, its repositories and the gRPC surface.
//
// Every error carries a Code that maps onto a gRPC status:
//
//	err := errors.NotFoundf("agent %s not found", id)
//	return nil, errors.ToGRPCError(err)
//
// Wrapping keeps the code of the inner error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to load agent")
//	}
//
// Sentinels compare by code:
//
//	if errors.Is(err, errors.ErrDialogCanceled) {
//	    // the player dismissed the modifier dialog
//	}
//
// Input validation collects every bad field before failing:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("agent_id", input.AgentID, vb)
//	errors.ValidateRange("modifier", input.Modifier, -100, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// *Error implements zapcore.ObjectMarshaler, so zap.Object("error", err)
// logs code, message and metadata as fields.
package errors
