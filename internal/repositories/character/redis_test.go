package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	mockclock "github.com/dmtable/sheet-api/internal/pkg/clock/mock"
	"github.com/dmtable/sheet-api/internal/repositories/character"
	"github.com/dmtable/sheet-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	clock   *mockclock.MockClock
	repo    character.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	s.ctrl = gomock.NewController(s.T())
	s.clock = mockclock.NewMockClock(s.ctrl)
	s.clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()

	repo, err := character.NewRedis(&character.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newCharacter(ownerID int64, name string) *entities.Character {
	return &entities.Character{
		OwnerID:   ownerID,
		Name:      name,
		Level:     1,
		HP:        10,
		HPMax:     10,
		Mana:      5,
		ManaMax:   5,
		Energy:    3,
		EnergyMax: 3,
	}
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	s.Run("assigns sequential IDs and initial version", func() {
		out1, err := s.repo.Create(s.ctx, character.CreateInput{
			Character: s.newCharacter(100, "Aldric"),
		})
		s.Require().NoError(err)
		s.Equal(int64(1), out1.Character.ID)
		s.Equal(int64(1), out1.Character.Version)
		s.Equal(int64(1700000000), out1.Character.CreatedAt)

		out2, err := s.repo.Create(s.ctx, character.CreateInput{
			Character: s.newCharacter(100, "Mira"),
		})
		s.Require().NoError(err)
		s.Equal(int64(2), out2.Character.ID)
	})

	s.Run("nil character", func() {
		_, err := s.repo.Create(s.ctx, character.CreateInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("zero owner", func() {
		_, err := s.repo.Create(s.ctx, character.CreateInput{
			Character: s.newCharacter(0, "Orphan"),
		})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestGet() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(100, "Aldric"),
	})
	s.Require().NoError(err)

	s.Run("round trips the character", func() {
		out, err := s.repo.Get(s.ctx, character.GetInput{ID: created.Character.ID})
		s.Require().NoError(err)
		s.Equal(created.Character, out.Character)
	})

	s.Run("not found", func() {
		_, err := s.repo.Get(s.ctx, character.GetInput{ID: 999})
		s.True(errors.IsNotFound(err))
	})

	s.Run("zero ID", func() {
		_, err := s.repo.Get(s.ctx, character.GetInput{ID: 0})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(100, "Aldric"),
	})
	s.Require().NoError(err)

	s.Run("increments version on success", func() {
		ch := *created.Character
		ch.Name = "Aldric the Bold"

		out, err := s.repo.Update(s.ctx, character.UpdateInput{Character: &ch})
		s.Require().NoError(err)
		s.Equal(int64(2), out.Character.Version)
		s.Equal("Aldric the Bold", out.Character.Name)

		got, err := s.repo.Get(s.ctx, character.GetInput{ID: ch.ID})
		s.Require().NoError(err)
		s.Equal("Aldric the Bold", got.Character.Name)
		s.Equal(int64(2), got.Character.Version)
	})

	s.Run("stale version is rejected", func() {
		stale := *created.Character // still version 1, store is at 2
		stale.Name = "Late Writer"

		_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: &stale})
		s.True(errors.IsFailedPrecondition(err))

		got, err := s.repo.Get(s.ctx, character.GetInput{ID: stale.ID})
		s.Require().NoError(err)
		s.Equal("Aldric the Bold", got.Character.Name)
	})

	s.Run("not found", func() {
		ch := s.newCharacter(100, "Ghost")
		ch.ID = 999
		_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: ch})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisRepositoryTestSuite) TestUpdate_MovesOwnerIndex() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(100, "Aldric"),
	})
	s.Require().NoError(err)

	ch := *created.Character
	ch.OwnerID = 200
	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: &ch})
	s.Require().NoError(err)

	oldOwner, err := s.repo.ListByOwnerID(s.ctx, character.ListByOwnerIDInput{OwnerID: 100})
	s.Require().NoError(err)
	s.Empty(oldOwner.Characters)

	newOwner, err := s.repo.ListByOwnerID(s.ctx, character.ListByOwnerIDInput{OwnerID: 200})
	s.Require().NoError(err)
	s.Len(newOwner.Characters, 1)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	created, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(100, "Aldric"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: created.Character.ID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: created.Character.ID})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.ListByOwnerID(s.ctx, character.ListByOwnerIDInput{OwnerID: 100})
	s.Require().NoError(err)
	s.Empty(list.Characters)

	s.Run("deleting again is not found", func() {
		_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: created.Character.ID})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisRepositoryTestSuite) TestListByOwnerID() {
	for _, name := range []string{"Aldric", "Mira"} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{
			Character: s.newCharacter(100, name),
		})
		s.Require().NoError(err)
	}
	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: s.newCharacter(200, "Torv"),
	})
	s.Require().NoError(err)

	out, err := s.repo.ListByOwnerID(s.ctx, character.ListByOwnerIDInput{OwnerID: 100})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)

	names := map[string]bool{}
	for _, ch := range out.Characters {
		names[ch.Name] = true
		s.Equal(int64(100), ch.OwnerID)
	}
	s.True(names["Aldric"])
	s.True(names["Mira"])

	s.Run("empty owner has no characters", func() {
		out, err := s.repo.ListByOwnerID(s.ctx, character.ListByOwnerIDInput{OwnerID: 300})
		s.Require().NoError(err)
		s.Empty(out.Characters)
	})
}

func (s *RedisRepositoryTestSuite) TestListAll() {
	for owner, name := range map[int64]string{100: "Aldric", 200: "Torv"} {
		_, err := s.repo.Create(s.ctx, character.CreateInput{
			Character: s.newCharacter(owner, name),
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListAll(s.ctx, character.ListAllInput{})
	s.Require().NoError(err)
	s.Len(out.Characters, 2)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
