package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
	"github.com/KirkDiggler/ddb-converter/internal/formats/fantasygrounds"
	v1alpha1 "github.com/KirkDiggler/ddb-converter/internal/handlers/converter/v1alpha1"
	"github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion"
	conversionmock "github.com/KirkDiggler/ddb-converter/internal/orchestrators/conversion/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	mockService *conversionmock.MockService
	handler     *v1alpha1.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockService = conversionmock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{ConversionService: s.mockService})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func sampleOutput() *conversion.ConvertOutput {
	return &conversion.ConvertOutput{
		ConversionID:      "conv_1",
		CharacterID:       123,
		CharacterName:     "Vex",
		Source:            conversion.SourceDNDBeyond,
		FantasyGroundsXML: "<root />",
		FoundryJSON:       []byte(`{"name":"Vex","type":"character"}`),
		Degraded:          []fantasygrounds.SectionError{{Section: "weaponlist", Reason: "inventory not computed"}},
		Warnings:          []string{"weaponlist unavailable: inventory not computed"},
		Summary: conversion.Summary{
			Level:      5,
			Classes:    []string{"Wizard"},
			SpellSlots: map[int]int{1: 4, 2: 3, 3: 2},
			Flags:      map[string]bool{"foundry_output": true},
		},
	}
}

func (s *HandlerTestSuite) TestConvertByID() {
	s.mockService.EXPECT().
		Convert(s.ctx, &conversion.ConvertInput{
			CharacterID: "123",
			Formats:     []conversion.Format{conversion.FormatFantasyGrounds, conversion.FormatFoundry},
			Flags:       map[flags.Name]bool{flags.SRDWeaponLookup: true},
			Refresh:     true,
		}).
		Return(sampleOutput(), nil)

	resp, err := s.handler.Convert(s.ctx, s.request(map[string]any{
		"character_id": float64(123),
		"formats":      []any{"fg", "foundry"},
		"flags":        map[string]any{"srd_weapon_lookup": true},
		"refresh":      true,
	}))
	s.Require().NoError(err)

	fields := resp.GetFields()
	s.Equal("conv_1", fields["conversion_id"].GetStringValue())
	s.Equal("123", fields["character_id"].GetStringValue())
	s.Equal("dndbeyond", fields["source"].GetStringValue())
	s.Equal("<root />", fields["fantasy_grounds_xml"].GetStringValue())
	s.Equal("character", fields["foundry_actor"].GetStructValue().GetFields()["type"].GetStringValue())
	s.Len(fields["warnings"].GetListValue().GetValues(), 1)
	s.Equal("weaponlist", fields["degraded_sections"].GetListValue().GetValues()[0].GetStructValue().GetFields()["section"].GetStringValue())

	summary := fields["summary"].GetStructValue().GetFields()
	s.Equal(5.0, summary["level"].GetNumberValue())
	s.Equal(3.0, summary["spell_slots"].GetStructValue().GetFields()["2"].GetNumberValue())
}

func (s *HandlerTestSuite) TestConvertInlineCharacter() {
	s.mockService.EXPECT().
		Convert(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *conversion.ConvertInput) (*conversion.ConvertOutput, error) {
			s.Empty(input.CharacterID)
			s.JSONEq(`{"id":7,"name":"Inline"}`, string(input.RawJSON))
			return &conversion.ConvertOutput{ConversionID: "conv_2"}, nil
		})

	resp, err := s.handler.Convert(s.ctx, s.request(map[string]any{
		"character": map[string]any{"id": 7, "name": "Inline"},
	}))
	s.Require().NoError(err)
	s.Equal("conv_2", resp.GetFields()["conversion_id"].GetStringValue())
	_, hasFoundry := resp.GetFields()["foundry_actor"]
	s.False(hasFoundry)
}

func (s *HandlerTestSuite) TestInvalidRequest() {
	testCases := []struct {
		name   string
		fields map[string]any
	}{
		{"bad character id", map[string]any{"character_id": true}},
		{"bad raw json", map[string]any{"raw_json": 12}},
		{"bad format", map[string]any{"character_id": "1", "formats": []any{"pdf"}}},
		{"formats not a list", map[string]any{"character_id": "1", "formats": "fg"}},
		{"flag not bool", map[string]any{"character_id": "1", "flags": map[string]any{"foundry_output": "yes"}}},
		{"character not object", map[string]any{"character": "{}"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.Convert(s.ctx, s.request(tc.fields))
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestServiceErrorMapped() {
	s.mockService.EXPECT().
		Convert(s.ctx, gomock.Any()).
		Return(nil, errors.NotFoundf("character %s not found on D&D Beyond", "9"))

	_, err := s.handler.Convert(s.ctx, s.request(map[string]any{"character_id": "9"}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
	s.Equal("character 9 not found on D&D Beyond", status.Convert(err).Message())
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterConverterServiceServer(srv, s.handler)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	s.mockService.EXPECT().
		Convert(gomock.Any(), gomock.Any()).
		Return(sampleOutput(), nil)

	client := v1alpha1.NewConverterServiceClient(conn)
	resp, err := client.Convert(s.ctx, s.request(map[string]any{"character_id": "123"}))
	s.Require().NoError(err)
	s.Equal("Vex", resp.GetFields()["character_name"].GetStringValue())
}
