package template_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/repositories/template"
	"github.com/dmtable/sheet-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    template.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := template.NewRedis(&template.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newTemplate(ownerID int64, name string) *entities.SheetTemplate {
	return &entities.SheetTemplate{
		OwnerID: ownerID,
		Name:    name,
		Config: entities.TemplateConfig{
			Tabs: []entities.Tab{entities.TabMain, entities.TabStats},
			Sections: []entities.CustomSection{
				{
					Title: "Traits",
					Fields: []entities.FieldDef{
						{Key: "honor", Label: "Honor", Type: entities.FieldNumber},
					},
				},
			},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	created, err := s.repo.Create(s.ctx, template.CreateInput{
		Template: s.newTemplate(100, "Knight"),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), created.Template.ID)

	out, err := s.repo.Get(s.ctx, template.GetInput{ID: created.Template.ID})
	s.Require().NoError(err)
	s.Equal(created.Template, out.Template)
	s.Len(out.Template.Config.Sections, 1)

	s.Run("not found", func() {
		_, err := s.repo.Get(s.ctx, template.GetInput{ID: 999})
		s.True(errors.IsNotFound(err))
	})

	s.Run("nil template", func() {
		_, err := s.repo.Create(s.ctx, template.CreateInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	created, err := s.repo.Create(s.ctx, template.CreateInput{
		Template: s.newTemplate(100, "Knight"),
	})
	s.Require().NoError(err)

	tmpl := *created.Template
	tmpl.Name = "Paladin"
	tmpl.Config.Tabs = []entities.Tab{entities.TabMain}

	out, err := s.repo.Update(s.ctx, template.UpdateInput{Template: &tmpl})
	s.Require().NoError(err)
	s.Equal("Paladin", out.Template.Name)

	got, err := s.repo.Get(s.ctx, template.GetInput{ID: tmpl.ID})
	s.Require().NoError(err)
	s.Equal("Paladin", got.Template.Name)
	s.Equal([]entities.Tab{entities.TabMain}, got.Template.Config.Tabs)

	s.Run("not found", func() {
		ghost := s.newTemplate(100, "Ghost")
		ghost.ID = 999
		_, err := s.repo.Update(s.ctx, template.UpdateInput{Template: ghost})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	created, err := s.repo.Create(s.ctx, template.CreateInput{
		Template: s.newTemplate(100, "Knight"),
	})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, template.DeleteInput{ID: created.Template.ID})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, template.GetInput{ID: created.Template.ID})
	s.True(errors.IsNotFound(err))

	list, err := s.repo.ListByOwnerID(s.ctx, template.ListByOwnerIDInput{OwnerID: 100})
	s.Require().NoError(err)
	s.Empty(list.Templates)
}

func (s *RedisRepositoryTestSuite) TestListByOwnerID() {
	for _, name := range []string{"Knight", "Mage"} {
		_, err := s.repo.Create(s.ctx, template.CreateInput{
			Template: s.newTemplate(100, name),
		})
		s.Require().NoError(err)
	}
	_, err := s.repo.Create(s.ctx, template.CreateInput{
		Template: s.newTemplate(200, "Rogue"),
	})
	s.Require().NoError(err)

	out, err := s.repo.ListByOwnerID(s.ctx, template.ListByOwnerIDInput{OwnerID: 100})
	s.Require().NoError(err)
	s.Len(out.Templates, 2)

	s.Run("zero owner rejected", func() {
		_, err := s.repo.ListByOwnerID(s.ctx, template.ListByOwnerIDInput{OwnerID: 0})
		s.True(errors.IsInvalidArgument(err))
	})
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
