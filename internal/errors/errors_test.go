package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
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
			message:  "snapshot not found",
			expected: "NOT_FOUND: snapshot not found",
		},
		{
			name:     "unavailable error",
			code:     errors.CodeUnavailable,
			message:  "content source unreachable",
			expected: "UNAVAILABLE: content source unreachable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapKeepsCauseReachable() {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := errors.WrapWithCode(cause, errors.CodeUnavailable, "fetch moves.json")

	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
	s.True(stderrors.Is(err, cause))
	s.Equal("UNAVAILABLE: fetch moves.json: dial tcp: connection refused", err.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	original := errors.DataLossf("body of %s is not JSON", "oracles.json").WithMeta("url", "https://example.test")
	wrapped := errors.Wrap(original, "fetch dataforged")

	s.Equal(errors.CodeDataLoss, wrapped.Code)
	s.Equal("https://example.test", wrapped.Meta["url"])
	s.True(errors.Is(wrapped, errors.New(errors.CodeDataLoss, "")))
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	wrapped := errors.Wrapf(fmt.Errorf("disk full"), "write %s", "sf-moves.json")
	s.Equal(errors.CodeInternal, wrapped.Code)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "nothing"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeInternal, "nothing"))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeNotFound, errors.GetCode(errors.NotFoundf("stat %q", "grit")))
}

func (s *ErrorsTestSuite) TestCodeSemantics() {
	testCases := []struct {
		code     errors.Code
		fatal    bool
		exitCode int
	}{
		{code: errors.CodeOK, fatal: false, exitCode: 0},
		{code: errors.CodeNotFound, fatal: false, exitCode: 1},
		{code: errors.CodeInvalidArgument, fatal: true, exitCode: 2},
		{code: errors.CodeUnavailable, fatal: true, exitCode: 1},
		{code: errors.CodeDataLoss, fatal: true, exitCode: 1},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.fatal, tc.code.Fatal())
			s.Equal(tc.exitCode, tc.code.ExitCode())
		})
	}
}
