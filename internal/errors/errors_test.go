package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/deltagreen-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "agent not found",
			expected: "NOT_FOUND: agent not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "unknown check kind",
			expected: "INVALID_ARGUMENT: unknown check kind",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, errors.GetCode(err))
			s.Equal(tc.message, errors.GetMessage(err))
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	inner := errors.NotFound("agent not found").WithMeta("agent_id", "agent_1")
	wrapped := errors.Wrap(inner, "failed to roll check")

	s.True(errors.IsNotFound(wrapped))
	s.Equal("agent_1", wrapped.Meta["agent_id"])
	s.Equal(inner, wrapped.Unwrap())

	plain := errors.Wrap(fmt.Errorf("connection reset"), "failed to load agent")
	s.True(errors.IsInternal(plain))

	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	inner := errors.Internal("dial tcp").WithMeta("endpoint", "localhost:6379")
	wrapped := errors.WrapWithCode(inner, errors.CodeUnavailable, "redis down")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("localhost:6379", wrapped.Meta["endpoint"])
}

func (s *ErrorsTestSuite) TestSentinels() {
	err := errors.Wrap(errors.ErrAlreadyEvaluated, "evaluate percentile check")
	s.True(errors.Is(err, errors.ErrAlreadyEvaluated))
	s.True(errors.IsFailedPrecondition(err))

	s.True(errors.Is(errors.Canceled("closed"), errors.ErrDialogCanceled))
	s.True(errors.IsCanceled(errors.ErrDialogCanceled))
	s.False(errors.Is(errors.NotFound("x"), errors.ErrDialogCanceled))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	original := errors.NotFoundf("agent %s not found", "agent_9").WithMeta("agent_id", "agent_9")

	grpcErr := errors.ToGRPCError(original)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("agent agent_9 not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsNotFound(back))

	var custom *errors.Error
	s.Require().True(errors.As(back, &custom))
	s.Equal("agent_9", custom.Meta["agent_id"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPassthrough() {
	s.Nil(errors.ToGRPCError(nil))

	already := status.Error(codes.Aborted, "already a status")
	s.Equal(already, errors.ToGRPCError(already))

	st, _ := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Equal(codes.Internal, st.Code())
}

func (s *ErrorsTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("agent_id", "  ", vb)
	errors.ValidateRange("modifier", 250, -100, 100, vb)
	errors.ValidateEnum("kind", "fishing", []string{"stat", "skill"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "agent_id: is required")
	s.Contains(err.Error(), "modifier: must be between -100 and 100")
	s.Contains(err.Error(), "kind: must be one of: stat, skill")

	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ErrorsTestSuite) TestZapObject() {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	logger.Info("roll failed", zap.Object("error", errors.NotFound("agent missing").WithMeta("agent_id", "a1")))

	s.Require().Equal(1, logs.Len())
	fields := logs.All()[0].ContextMap()
	obj, ok := fields["error"].(map[string]any)
	s.Require().True(ok)
	s.Equal("NOT_FOUND", obj["code"])
	s.Equal("agent missing", obj["message"])
	s.Equal("a1", obj["meta.agent_id"])
}
