// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/entities/deltagreen"
	"github.com/KirkDiggler/deltagreen-api/internal/repositories/agent"
	agentmock "github.com/KirkDiggler/deltagreen-api/internal/repositories/agent/mock"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
	rolllogmock "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log/mock"
)

// ExpectAgentGet serves a for its own ID
func ExpectAgentGet(
	ctx context.Context, mockRepo *agentmock.MockRepository,
	a *deltagreen.Agent, err error,
) *gomock.Call {
	out := &agent.GetOutput{Agent: a}
	if err != nil {
		out = nil
	}
	return mockRepo.EXPECT().
		Get(ctx, agent.GetInput{ID: a.ID}).
		Return(out, err)
}

// ExpectAgentUpdate captures the saved sheet into *saved
func ExpectAgentUpdate(
	ctx context.Context, mockRepo *agentmock.MockRepository,
	saved **deltagreen.Agent, err error,
) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input agent.UpdateInput) (*agent.UpdateOutput, error) {
			if err != nil {
				return nil, err
			}
			if saved != nil {
				*saved = input.Agent
			}
			return &agent.UpdateOutput{Agent: input.Agent}, nil
		})
}

// ExpectRollLogGet serves messages for one agent and channel
func ExpectRollLogGet(
	ctx context.Context, mockRepo *rolllogmock.MockRepository,
	input rolllog.GetInput, messages []*chat.Message,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, input).
		Return(&rolllog.GetOutput{Messages: messages}, nil)
}
