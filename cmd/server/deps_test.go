package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
)

type CommandTestSuite struct {
	suite.Suite
	dir string
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *CommandTestSuite) TestLoadFlags() {
	path := filepath.Join(s.dir, "flags.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("srd_weapon_lookup: true\nfoundry_output: false\n"), 0o600))

	fl, err := loadFlags(path, map[string]string{"foundry_output": "on", "weapon_thrown_split": "false"})
	s.Require().NoError(err)
	s.True(fl.Enabled(flags.SRDWeaponLookup))
	s.True(fl.Enabled(flags.FoundryOutput))
	s.False(fl.Enabled(flags.WeaponThrownSplit))
}

func (s *CommandTestSuite) TestLoadFlagsRejectsBadValues() {
	_, err := loadFlags("", map[string]string{"foundry_output": "maybe"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = loadFlags("", map[string]string{"no_such_flag": "true"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CommandTestSuite) TestReadAndWrite() {
	in, err := readInput(bytes.NewBufferString(`{"id":1}`), "-")
	s.Require().NoError(err)
	s.Equal(`{"id":1}`, string(in))

	_, err = readInput(nil, filepath.Join(s.dir, "missing.json"))
	s.True(errors.IsInvalidArgument(err))

	var stdout bytes.Buffer
	s.Require().NoError(writeOutput(&stdout, "", []byte("<root />")))
	s.Equal("<root />", stdout.String())

	path := filepath.Join(s.dir, "out.xml")
	s.Require().NoError(writeOutput(&stdout, path, []byte("<root />")))
	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal("<root />", string(data))
}
