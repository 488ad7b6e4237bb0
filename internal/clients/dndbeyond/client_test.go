package dndbeyond_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/clients/dndbeyond"
	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite
	ctx      context.Context
	requests atomic.Int32
	handler  http.HandlerFunc
	server   *httptest.Server
	client   dndbeyond.Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests.Store(0)
	s.handler = nil
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.handler(w, r)
	}))

	client, err := dndbeyond.New(&dndbeyond.Config{
		BaseURL:         s.server.URL,
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) respond(status int, body string) {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *ClientTestSuite) TestFetchCharacter() {
	var path string
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		s.Equal("application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":123,"name":"Vex"}}`))
	}

	body, err := s.client.FetchCharacter(s.ctx, "https://www.dndbeyond.com/characters/123")
	s.Require().NoError(err)
	s.Equal("/123", path)
	s.JSONEq(`{"success":true,"data":{"id":123,"name":"Vex"}}`, string(body))
	s.Equal(int32(1), s.requests.Load())
}

func (s *ClientTestSuite) TestStatusClassification() {
	testCases := []struct {
		name     string
		status   int
		code     errors.Code
		attempts int32
	}{
		{"unauthorized", http.StatusUnauthorized, errors.CodeUnauthenticated, 1},
		{"forbidden", http.StatusForbidden, errors.CodePermissionDenied, 1},
		{"not found", http.StatusNotFound, errors.CodeNotFound, 1},
		{"rate limited", http.StatusTooManyRequests, errors.CodeResourceExhausted, 3},
		{"server error", http.StatusBadGateway, errors.CodeUnavailable, 3},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.requests.Store(0)
			s.respond(tc.status, `{}`)

			_, err := s.client.FetchCharacter(s.ctx, "123")
			s.Require().Error(err)
			s.Equal(tc.code, errors.GetCode(err))
			s.Equal(tc.attempts, s.requests.Load())
		})
	}
}

func (s *ClientTestSuite) TestRetryRecovers() {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		if s.requests.Load() < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":123}`))
	}

	body, err := s.client.FetchCharacter(s.ctx, "123")
	s.Require().NoError(err)
	s.JSONEq(`{"id":123}`, string(body))
	s.Equal(int32(2), s.requests.Load())
}

func (s *ClientTestSuite) TestUnsuccessfulEnvelope() {
	s.respond(http.StatusOK, `{"success":false,"message":"Character is private"}`)

	_, err := s.client.FetchCharacter(s.ctx, "123")
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
	s.Equal("Character is private", errors.GetMessage(err))
	s.Equal(int32(1), s.requests.Load())
}

func (s *ClientTestSuite) TestInvalidID() {
	_, err := s.client.FetchCharacter(s.ctx, "not-a-character")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(int32(0), s.requests.Load())
}

func (s *ClientTestSuite) TestCanceledContext() {
	s.respond(http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.client.FetchCharacter(ctx, "123")
	s.Require().Error(err)
	s.LessOrEqual(s.requests.Load(), int32(1))
}

func (s *ClientTestSuite) TestParseCharacterID() {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "12345", want: "12345"},
		{input: " 12345 ", want: "12345"},
		{input: "https://www.dndbeyond.com/characters/98765", want: "98765"},
		{input: "https://www.dndbeyond.com/profile/someone/characters/555/builder", want: "555"},
		{input: "", wantErr: true},
		{input: "-4", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			got, err := dndbeyond.ParseCharacterID(tc.input)
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.IsInvalidArgument(err))
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.want, got)
		})
	}
}

func (s *ClientTestSuite) TestConfigValidate() {
	cfg := &dndbeyond.Config{}
	s.Require().NoError(cfg.Validate())
	s.Equal(dndbeyond.DefaultBaseURL, cfg.BaseURL)
	s.Equal(uint(3), cfg.MaxAttempts)

	s.Error((&dndbeyond.Config{BaseURL: "ftp://example.com"}).Validate())
}
