package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestUUID() {
	id := idgen.NewUUID("conv").Generate()
	s.True(strings.HasPrefix(id, "conv_"))
	parsed, err := uuid.Parse(strings.TrimPrefix(id, "conv_"))
	s.Require().NoError(err)
	s.Equal(uuid.Version(7), parsed.Version())

	gen := idgen.NewUUID("")
	first, second := gen.Generate(), gen.Generate()
	_, err = uuid.Parse(first)
	s.NoError(err)
	s.NotEqual(first, second)
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("conv")
	s.Equal("conv_1", gen.Generate())
	s.Equal("conv_2", gen.Generate())
	s.Equal("1", idgen.NewSequential("").Generate())
}

func (s *IDGenTestSuite) TestFunc() {
	var gen idgen.Generator = idgen.Func(func() string { return "fixed" })
	s.Equal("fixed", gen.Generate())
}
