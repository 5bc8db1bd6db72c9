// Package v1alpha1 handles the deltagreen.api.v1alpha1 gRPC services
package v1alpha1

import (
	"context"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/checks"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/orchestrators/check"
)

// CheckHandlerConfig holds dependencies for the check handler
type CheckHandlerConfig struct {
	CheckService check.Service
}

// Validate ensures all required dependencies are present
func (c *CheckHandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.CheckService == nil {
		return errors.InvalidArgument("check service is required")
	}
	return nil
}

// CheckHandler implements the check gRPC service
type CheckHandler struct {
	checkService check.Service
}

var _ CheckServiceServer = (*CheckHandler)(nil)

// NewCheckHandler creates a new check handler with the given configuration
func NewCheckHandler(cfg *CheckHandlerConfig) (*CheckHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CheckHandler{
		checkService: cfg.CheckService,
	}, nil
}

// RollCheck rolls one check for an agent and reports it to the roll log
func (h *CheckHandler) RollCheck(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	if f.str("agent_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("agent_id is required"))
	}
	if f.str("kind") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("kind is required"))
	}
	modifier, err := f.whole("modifier")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.checkService.RollCheck(ctx, &check.RollCheckInput{
		AgentID:       f.str("agent_id"),
		Kind:          f.str("kind"),
		Key:           f.str("key"),
		ItemID:        f.str("item_id"),
		TrainingID:    f.str("training_id"),
		TrainingName:  f.str("training_name"),
		Modifier:      modifier,
		RollMode:      f.str("roll_mode"),
		OuterModifier: f.str("outer_modifier"),
		InnerModifier: f.str("inner_modifier"),
		SuccessLoss:   f.str("success_loss"),
		FailedLoss:    f.str("failed_loss"),
		IsGM:          f.flag("is_gm"),
		Speaker:       f.str("speaker"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(rollCheckResponse(output))
}

// GetRollLog returns an agent's recent roll messages
func (h *CheckHandler) GetRollLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	if f.str("agent_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("agent_id is required"))
	}
	limit, err := f.whole("limit")
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.checkService.GetRollLog(ctx, &check.GetRollLogInput{
		AgentID: f.str("agent_id"),
		Channel: f.str("channel"),
		Limit:   limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	messages := make([]any, 0, len(output.Messages))
	for _, msg := range output.Messages {
		messages = append(messages, messageFields(msg))
	}
	return toStruct(map[string]any{"messages": messages})
}

// ClearRollLog removes an agent's roll log for one channel
func (h *CheckHandler) ClearRollLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	if f.str("agent_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("agent_id is required"))
	}

	output, err := h.checkService.ClearRollLog(ctx, &check.ClearRollLogInput{
		AgentID: f.str("agent_id"),
		Channel: f.str("channel"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toStruct(map[string]any{
		"message":          "Roll log cleared successfully",
		"messages_cleared": output.MessagesDeleted,
	})
}

// ApplySkillImprovements improves every skill the agent failed
func (h *CheckHandler) ApplySkillImprovements(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	if f.str("agent_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("agent_id is required"))
	}

	output, err := h.checkService.ApplySkillImprovements(ctx, &check.ApplySkillImprovementsInput{
		AgentID: f.str("agent_id"),
		Speaker: f.str("speaker"),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	improvements := make([]any, 0, len(output.Improvements))
	for _, imp := range output.Improvements {
		improvements = append(improvements, map[string]any{
			"skill_key": imp.SkillKey,
			"typed":     imp.Typed,
			"label":     imp.Label,
			"gain":      imp.Gain,
		})
	}

	resp := map[string]any{
		"formula":      output.Formula,
		"improvements": improvements,
	}
	if output.Message != nil {
		resp["flavor"] = output.Message.Flavor
		resp["content"] = output.Message.Content
	}
	return toStruct(resp)
}

func rollCheckResponse(output *check.RollCheckOutput) map[string]any {
	if output.Canceled {
		return map[string]any{
			"canceled": true,
			"roll_id":  output.RollID,
			"kind":     output.Kind.String(),
		}
	}

	results := make([]any, 0)
	if output.Result != nil {
		for _, term := range output.Result.Dice() {
			for _, v := range term.Values {
				results = append(results, v)
			}
		}
	}

	sideEffects := make([]any, 0, len(output.SideEffects))
	for _, effect := range output.SideEffects {
		sideEffects = append(sideEffects, map[string]any{
			"kind":      string(effect.Kind),
			"skill_key": effect.SkillKey,
			"typed":     effect.Typed,
		})
	}

	resp := map[string]any{
		"canceled":     false,
		"roll_id":      output.RollID,
		"kind":         output.Kind.String(),
		"label":        output.Label,
		"formula":      output.Formula,
		"total":        output.Total,
		"target":       output.Target + output.Modifier,
		"base_target":  output.Target,
		"modifier":     output.Modifier,
		"degraded":     output.Degraded,
		"outcome":      output.Outcome.String(),
		"success":      output.Outcome.Succeeded(),
		"critical":     output.Outcome.Critical(),
		"inhuman":      output.Inhuman,
		"lethal":       output.Lethal,
		"results":      results,
		"side_effects": sideEffects,
	}
	if output.NonLethal != nil {
		resp["non_lethal_damage"] = map[string]any{
			"die1":  output.NonLethal.Die1,
			"die2":  output.NonLethal.Die2,
			"total": output.NonLethal.Total,
		}
	}
	if output.Kind == checks.KindSanityDamage {
		resp["sanity_low"] = output.SanityLow
		resp["sanity_high"] = output.SanityHigh
	}
	if output.Message != nil {
		resp["flavor"] = output.Message.Flavor
		resp["content"] = output.Message.Content
		resp["visibility"] = string(output.Message.Visibility)
	}
	return resp
}

func messageFields(msg *chat.Message) map[string]any {
	return map[string]any{
		"id":         msg.ID,
		"roll_id":    msg.RollID,
		"speaker":    msg.Speaker,
		"flavor":     msg.Flavor,
		"content":    msg.Content,
		"visibility": string(msg.Visibility),
		"kind":       string(msg.Kind),
		"check_kind": msg.CheckKind,
		"total":      msg.Total,
		"created_at": msg.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Internalf("failed to encode response: %v", err))
	}
	return s, nil
}

// fields reads typed values out of a request struct. Missing fields
// read as zero values.
type fields map[string]*structpb.Value

func fieldsOf(req *structpb.Struct) fields {
	return fields(req.GetFields())
}

func (f fields) str(key string) string {
	return f[key].GetStringValue()
}

func (f fields) flag(key string) bool {
	return f[key].GetBoolValue()
}

// maxWholeMagnitude bounds numeric request fields such as modifier and limit
const maxWholeMagnitude = 1_000_000

func (f fields) whole(key string) (int, error) {
	v, ok := f[key]
	if !ok {
		return 0, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return 0, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, errors.InvalidArgumentf("%s must be a whole number", key)
	}
	if math.Abs(n.NumberValue) > maxWholeMagnitude {
		return 0, errors.InvalidArgumentf("%s must be between %d and %d", key, -maxWholeMagnitude, maxWholeMagnitude)
	}
	return int(n.NumberValue), nil
}
