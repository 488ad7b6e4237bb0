package xmlgen_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ddb-converter/internal/xmlgen"
)

type WriterTestSuite struct {
	suite.Suite
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (s *WriterTestSuite) TestID() {
	s.Equal("id-00001", xmlgen.ID(1))
	s.Equal("id-02000", xmlgen.ID(2000))
}

func (s *WriterTestSuite) TestDiceList() {
	testCases := []struct {
		in, want string
	}{
		{"2d6", "d6,d6"},
		{"1d8", "d8"},
		{"d10", "d10"},
		{"3d4+2", "d4,d4,d4"},
		{"d6,d6", "d6,d6"},
		{"", ""},
		{"5", "5"},
	}
	for _, tc := range testCases {
		s.Run(tc.in, func() {
			s.Equal(tc.want, xmlgen.DiceList(tc.in))
		})
	}
}

func (s *WriterTestSuite) TestTypedElements() {
	w := xmlgen.NewWriter(0)
	w.Open("weaponlist").OpenID(1).
		String("name", "Sword & Board").
		Number("bonus", 2).
		Decimal("weight", 0.25).
		Dice("dice", "2d6").
		String("notes", "").
		CloseID(1).Close("weaponlist")

	want := "<weaponlist>\n" +
		"\t<id-00001>\n" +
		"\t\t<name type=\"string\">Sword &amp; Board</name>\n" +
		"\t\t<bonus type=\"number\">2</bonus>\n" +
		"\t\t<weight type=\"number\">0.25</weight>\n" +
		"\t\t<dice type=\"dice\">d6,d6</dice>\n" +
		"\t\t<notes type=\"string\" />\n" +
		"\t</id-00001>\n" +
		"</weaponlist>\n"
	s.Equal(want, w.XML())
	s.Equal(0, w.Depth())
}

func (s *WriterTestSuite) TestDescription() {
	w := xmlgen.NewWriter(0)
	w.Description("text", "<p>You gain <strong>+5</strong> to initiative.</p><p>You can't be surprised.</p>")

	want := "<text type=\"formattedtext\">\n" +
		"\t<p>You gain +5 to initiative.</p>\n" +
		"\t<p>You can&#x27;t be surprised.</p>\n" +
		"</text>\n"
	s.Equal(want, w.XML())
}

func (s *WriterTestSuite) TestComment() {
	w := xmlgen.NewWriter(1)
	w.Comment("section unavailable: bad -- data")
	s.Equal("\t<!-- section unavailable: bad -  data -->\n", w.XML())
}

func (s *WriterTestSuite) TestParagraphs() {
	s.Run("decodes entities and splits blocks", func() {
		got := xmlgen.Paragraphs("<p>Salt &amp; pepper</p><ul><li>one</li><li>two</li></ul>")
		s.Equal([]string{"Salt & pepper", "one", "two"}, got)
	})

	s.Run("plain text", func() {
		s.Equal([]string{"just text"}, xmlgen.Paragraphs("  just   text "))
	})

	s.Run("empty", func() {
		s.Nil(xmlgen.Paragraphs("   "))
	})

	s.Run("line breaks", func() {
		s.Equal("a b", xmlgen.PlainText("a<br/>b"))
	})
}
