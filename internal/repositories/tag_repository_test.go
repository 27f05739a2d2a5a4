package repositories

import (
	"testing"

	"fintrack/internal/database"

	"github.com/stretchr/testify/suite"
)

// TagRepositoryTestSuite defines the test suite for the tag repository
type TagRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo TagRepositoryInterface
}

// SetupTest runs before each test
func (s *TagRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTagRepository(s.db.DB)
}

// TearDownTest runs after each test
func (s *TagRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTagRepositorySuite runs the test suite
func TestTagRepositorySuite(t *testing.T) {
	suite.Run(t, new(TagRepositoryTestSuite))
}

func (s *TagRepositoryTestSuite) TestGetOrCreate_CreatesOnce() {
	first, err := s.repo.GetOrCreate("food")
	s.Require().NoError(err)
	s.Equal("food", first.Name)
	s.NotEmpty(first.ID)

	second, err := s.repo.GetOrCreate("food")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	tags, err := s.repo.GetAll()
	s.Require().NoError(err)
	s.Len(tags, 1)
}

func (s *TagRepositoryTestSuite) TestGetOrCreate_NormalizesName() {
	tag, err := s.repo.GetOrCreate("  FOOD ")
	s.Require().NoError(err)
	s.Equal("food", tag.Name)

	same, err := s.repo.GetOrCreate("food")
	s.Require().NoError(err)
	s.Equal(tag.ID, same.ID)
}

func (s *TagRepositoryTestSuite) TestGetByName_NotFound() {
	_, err := s.repo.GetByName("missing")
	s.ErrorIs(err, ErrTagNotFound)
}

func (s *TagRepositoryTestSuite) TestGetAll_SortedByName() {
	for _, name := range []string{"travel", "food", "monthly"} {
		_, err := s.repo.GetOrCreate(name)
		s.Require().NoError(err)
	}

	tags, err := s.repo.GetAll()
	s.Require().NoError(err)
	s.Require().Len(tags, 3)
	s.Equal("food", tags[0].Name)
	s.Equal("monthly", tags[1].Name)
	s.Equal("travel", tags[2].Name)
}
