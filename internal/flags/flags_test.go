package flags_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/flags"
)

type FlagsTestSuite struct {
	suite.Suite
}

func TestFlagsSuite(t *testing.T) {
	suite.Run(t, new(FlagsTestSuite))
}

func (s *FlagsTestSuite) TestDefaults() {
	set := flags.Defaults()
	s.False(set.Enabled(flags.SRDWeaponLookup))
	s.True(set.Enabled(flags.FoundryOutput))
	s.True(set.Enabled(flags.FeatEffectHeuristics))
	s.True(set.Enabled(flags.StripHiddenTraits))
	s.True(set.Enabled(flags.WeaponThrownSplit))
	s.False(set.Enabled(flags.VariantEncumbrance))
	s.False(set.Enabled("nope"))
	s.Len(set.Map(), len(flags.Known()))
}

func (s *FlagsTestSuite) TestOverridesWin() {
	set, err := flags.New(map[flags.Name]bool{
		flags.SRDWeaponLookup:   true,
		flags.WeaponThrownSplit: false,
	})
	s.Require().NoError(err)
	s.True(set.Enabled(flags.SRDWeaponLookup))
	s.False(set.Enabled(flags.WeaponThrownSplit))
	s.True(set.Enabled(flags.FoundryOutput))

	again, err := set.With(map[flags.Name]bool{flags.WeaponThrownSplit: true})
	s.Require().NoError(err)
	s.True(again.Enabled(flags.WeaponThrownSplit))
	s.False(set.Enabled(flags.WeaponThrownSplit), "original set is unchanged")
}

func (s *FlagsTestSuite) TestUnknownFlagRejected() {
	_, err := flags.New(map[flags.Name]bool{"warp_drive": true})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "warp_drive")
}

func (s *FlagsTestSuite) TestLoad() {
	s.Run("empty path gives defaults", func() {
		set, err := flags.Load("")
		s.Require().NoError(err)
		s.Equal(flags.Defaults().Map(), set.Map())
	})

	s.Run("yaml overrides", func() {
		path := filepath.Join(s.T().TempDir(), "flags.yaml")
		s.Require().NoError(os.WriteFile(path, []byte("srd_weapon_lookup: true\nfoundry_output: false\n"), 0o600))

		set, err := flags.Load(path)
		s.Require().NoError(err)
		s.True(set.Enabled(flags.SRDWeaponLookup))
		s.False(set.Enabled(flags.FoundryOutput))
	})

	s.Run("invalid yaml", func() {
		path := filepath.Join(s.T().TempDir(), "flags.yaml")
		s.Require().NoError(os.WriteFile(path, []byte("srd_weapon_lookup: [nope"), 0o600))

		_, err := flags.Load(path)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing file", func() {
		_, err := flags.Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
		s.Error(err)
	})
}
