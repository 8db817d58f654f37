package filter

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type FilterSuite struct {
	suite.Suite
}

func TestFilterSuite(t *testing.T) {
	suite.Run(t, new(FilterSuite))
}

func (s *FilterSuite) TestNormalize() {
	s.Run("lowercases and strips non-letters", func() {
		s.Equal("oakschool", Normalize("Oak School"))
		s.Equal("helloworld", Normalize("Hello, World?"))
		s.Equal("", Normalize(""))
		s.Equal("", Normalize("  ,.;:-_ "))
	})

	s.Run("substitutes leet characters", func() {
		s.Equal("shit", Normalize("5h1t"))
		s.Equal("hello", Normalize("h3ll0"))
		s.Equal("assist", Normalize("@$$!5t"))
	})

	s.Run("unmapped digits are dropped", func() {
		s.Equal("classb", Normalize("Class 9B"))
	})

	s.Run("is idempotent", func() {
		for _, input := range []string{
			"", "Oak School", "5h1t", "h3ll0", "St. Mary's Primary", "!@#$%", "MiXeD CaSe 42",
		} {
			once := Normalize(input)
			s.Equal(once, Normalize(once), "input %q", input)
		}
	})
}

func (s *FilterSuite) TestContainsBlockedContent() {
	s.Run("matches term embedded in a longer run", func() {
		matched, term := ContainsBlockedContent("bullyfuckville")
		s.True(matched)
		s.Equal("fuck", term)
	})

	s.Run("matches term formed across adjacent words", func() {
		// Space removal in the substring pass is what catches this; the
		// per-word pass alone never would.
		matched, term := ContainsBlockedContent("a ss")
		s.True(matched)
		s.Equal("ass", term)
	})

	s.Run("matches exact word via per-word pass", func() {
		matched, term := ContainsBlockedContent("you are a jerk")
		s.True(matched)
		s.Equal("jerk", term)
	})

	s.Run("defeats leet substitutions", func() {
		matched, term := ContainsBlockedContent("5h1t")
		s.True(matched)
		s.Equal("shit", term)

		matched, term = ContainsBlockedContent("h3ll0")
		s.True(matched)
		s.Equal("hell", term)
	})

	s.Run("passes clean input", func() {
		for _, input := range []string{
			"", "Oak School", "Wales", "Maria", "Springfield Primary", "Mr O'Neill",
		} {
			matched, term := ContainsBlockedContent(input)
			s.False(matched, "input %q matched %q", input, term)
			s.Empty(term)
		}
	})
}

func (s *FilterSuite) TestCheckFields() {
	s.Run("reports first offending field", func() {
		res := CheckFields([]Field{
			{Name: "teacher_name", Value: "Clean Name"},
			{Name: "school_name", Value: "fuckface"},
		})
		s.False(res.Clean)
		s.Equal("school_name", res.FieldName)
		s.Equal("fuck", res.Term)
	})

	s.Run("short-circuits on the first match", func() {
		res := CheckFields([]Field{
			{Name: "first", Value: "5h1t happens"},
			{Name: "second", Value: "also shit"},
		})
		s.False(res.Clean)
		s.Equal("first", res.FieldName)
	})

	s.Run("all clean", func() {
		res := CheckFields([]Field{
			{Name: "teacher_name", Value: "Maria"},
			{Name: "school_name", Value: "Oak School"},
		})
		s.True(res.Clean)
		s.Empty(res.FieldName)
		s.Empty(res.Term)
	})

	s.Run("no fields", func() {
		s.True(CheckFields(nil).Clean)
	})
}

func (s *FilterSuite) TestRejectionMessage() {
	msg := RejectionMessage()
	s.NotEmpty(msg)

	// The message must itself survive the filter: it never echoes blocked
	// content back to the user.
	matched, term := ContainsBlockedContent(msg)
	s.False(matched, "rejection message matched %q", term)
}

func (s *FilterSuite) TestChecker() {
	checker := NewChecker()

	res := checker.CheckFields([]Field{{Name: "student_name", Value: "w4nk3r"}})
	s.False(res.Clean)
	s.Equal("wanker", res.Term)

	s.Equal(RejectionMessage(), checker.RejectionMessage())
}
