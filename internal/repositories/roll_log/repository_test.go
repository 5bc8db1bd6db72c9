package rolllog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/deltagreen-api/internal/chat"
	"github.com/KirkDiggler/deltagreen-api/internal/errors"
	"github.com/KirkDiggler/deltagreen-api/internal/pkg/clock"
	rolllog "github.com/KirkDiggler/deltagreen-api/internal/repositories/roll_log"
	"github.com/KirkDiggler/deltagreen-api/internal/testutils"
)

const (
	testAgentID = "agent-fox"
	testTTL     = time.Hour
	testMax     = 5
)

type RepositoryTestSuite struct {
	suite.Suite
	setup   func(s *RepositoryTestSuite)
	repo    rolllog.Repository
	advance func(d time.Duration)
	ctx     context.Context
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{setup: func(s *RepositoryTestSuite) {
		client, mr := testutils.CreateTestRedisClient(s.T())
		repo, err := rolllog.NewRedisRepository(&rolllog.Config{Client: client, TTL: testTTL, MaxEntries: testMax})
		s.Require().NoError(err)
		s.repo = repo
		s.advance = mr.FastForward
	}})
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{setup: func(s *RepositoryTestSuite) {
		c := clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
		s.repo = rolllog.NewInMemory(c, testTTL, testMax)
		s.advance = c.Advance
	}})
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.setup(s)
}

func message(n int) *chat.Message {
	return &chat.Message{
		ID:         fmt.Sprintf("msg_%d", n),
		AgentID:    testAgentID,
		Flavor:     "Rolling Luck Target 50",
		Content:    fmt.Sprintf("Success\n1d100: %d", n),
		Visibility: chat.RollModePublic,
		Kind:       chat.MessageKindRoll,
		Total:      n,
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, n, 0, time.UTC),
	}
}

func (s *RepositoryTestSuite) append(channel string, n int) {
	_, err := s.repo.Append(s.ctx, rolllog.AppendInput{AgentID: testAgentID, Channel: channel, Message: message(n)})
	s.Require().NoError(err)
}

func (s *RepositoryTestSuite) TestAppendAndGet() {
	s.append(chat.ChannelPublic, 1)
	s.append(chat.ChannelPublic, 2)
	s.append(chat.ChannelGM, 3)

	out, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 2)
	s.Equal(message(1), out.Messages[0])
	s.Equal(message(2), out.Messages[1])

	gm, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelGM})
	s.Require().NoError(err)
	s.Len(gm.Messages, 1)
}

func (s *RepositoryTestSuite) TestGetLimit() {
	for i := 1; i <= 4; i++ {
		s.append(chat.ChannelPublic, i)
	}

	out, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, 2)
	s.Equal(3, out.Messages[0].Total)
	s.Equal(4, out.Messages[1].Total)
}

func (s *RepositoryTestSuite) TestTrimsToMaxEntries() {
	var last *rolllog.AppendOutput
	for i := 1; i <= testMax+2; i++ {
		var err error
		last, err = s.repo.Append(s.ctx, rolllog.AppendInput{AgentID: testAgentID, Channel: chat.ChannelPublic, Message: message(i)})
		s.Require().NoError(err)
	}
	s.Equal(int64(testMax), last.Length)

	out, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.Require().NoError(err)
	s.Require().Len(out.Messages, testMax)
	s.Equal(3, out.Messages[0].Total)
}

func (s *RepositoryTestSuite) TestExpires() {
	s.append(chat.ChannelPublic, 1)
	s.advance(testTTL / 2)
	s.append(chat.ChannelPublic, 2)
	s.advance(testTTL / 2)

	out, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.Require().NoError(err)
	s.Len(out.Messages, 2, "append refreshes the TTL")

	s.advance(testTTL)
	out, err = s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.Require().NoError(err)
	s.Empty(out.Messages)
}

func (s *RepositoryTestSuite) TestDelete() {
	s.append(chat.ChannelSelf, 1)
	s.append(chat.ChannelSelf, 2)

	out, err := s.repo.Delete(s.ctx, rolllog.DeleteInput{AgentID: testAgentID, Channel: chat.ChannelSelf})
	s.Require().NoError(err)
	s.Equal(int64(2), out.MessagesDeleted)

	got, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelSelf})
	s.Require().NoError(err)
	s.Empty(got.Messages)

	out, err = s.repo.Delete(s.ctx, rolllog.DeleteInput{AgentID: testAgentID, Channel: chat.ChannelSelf})
	s.Require().NoError(err)
	s.Zero(out.MessagesDeleted)
}

func (s *RepositoryTestSuite) TestValidation() {
	_, err := s.repo.Append(s.ctx, rolllog.AppendInput{Channel: chat.ChannelPublic, Message: message(1)})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Append(s.ctx, rolllog.AppendInput{AgentID: testAgentID, Message: message(1)})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Append(s.ctx, rolllog.AppendInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic, Limit: -1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, rolllog.DeleteInput{AgentID: testAgentID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestSinkRoutesByVisibility() {
	sink := rolllog.NewSink(s.repo, 0)

	blind := message(7)
	blind.Visibility = chat.RollModeBlind
	s.Require().NoError(sink.Send(s.ctx, blind))
	s.Require().NoError(sink.Send(s.ctx, message(8)))

	gm, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelGM})
	s.Require().NoError(err)
	s.Require().Len(gm.Messages, 1)
	s.Equal(7, gm.Messages[0].Total)

	public, err := s.repo.Get(s.ctx, rolllog.GetInput{AgentID: testAgentID, Channel: chat.ChannelPublic})
	s.Require().NoError(err)
	s.Len(public.Messages, 1)

	s.True(errors.IsInvalidArgument(sink.Send(s.ctx, nil)))
}

func TestConfigValidate(t *testing.T) {
	if _, err := rolllog.NewRedisRepository(nil); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	client, _ := testutils.CreateTestRedisClient(t)
	if _, err := rolllog.NewRedisRepository(&rolllog.Config{Client: client, TTL: -time.Second}); !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
