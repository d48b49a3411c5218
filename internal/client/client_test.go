package client_test

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/dmtable/sheet-api/internal/auth"
	"github.com/dmtable/sheet-api/internal/client"
	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/handlers/apiv1"
	orchestrator "github.com/dmtable/sheet-api/internal/orchestrators/sheet"
	"github.com/dmtable/sheet-api/internal/repositories/character"
	"github.com/dmtable/sheet-api/internal/repositories/template"
	"github.com/dmtable/sheet-api/internal/repositories/user"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
	"github.com/dmtable/sheet-api/internal/testutils"
)

// The client suite runs against a real server on a test listener so that
// request building and error decoding are exercised end to end.
type ClientTestSuite struct {
	suite.Suite
	server  *httptest.Server
	client  *client.Client
	ctx     context.Context
	cleanup func()
}

func (s *ClientTestSuite) SetupTest() {
	redisClient, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	charRepo, err := character.NewRedis(&character.RedisConfig{Client: redisClient})
	s.Require().NoError(err)
	tmplRepo, err := template.NewRedis(&template.RedisConfig{Client: redisClient})
	s.Require().NoError(err)
	userRepo, err := user.NewRedis(&user.RedisConfig{Client: redisClient})
	s.Require().NoError(err)

	orch, err := orchestrator.New(&orchestrator.Config{
		CharacterRepo: charRepo,
		TemplateRepo:  tmplRepo,
		UserRepo:      userRepo,
	})
	s.Require().NoError(err)

	handler, err := apiv1.New(&apiv1.Config{Service: orch})
	s.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(auth.Middleware(auth.Config{Disabled: true, Resolver: orch}))
	handler.Register(api)

	s.server = httptest.NewServer(router)

	values := url.Values{}
	values.Set("user", `{"id":100,"username":"tester"}`)
	s.client, err = client.New(&client.Config{
		BaseURL:  s.server.URL,
		InitData: values.Encode(),
	})
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	s.cleanup()
}

func (s *ClientTestSuite) TestMe() {
	u, err := s.client.Me(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(100), u.ID)
	s.Equal("tester", u.Username)
}

func (s *ClientTestSuite) TestCharacterRoundTrip() {
	ch, err := s.client.CreateCharacter(s.ctx, "Aldric", 0)
	s.Require().NoError(err)
	s.NotZero(ch.ID)

	characters, err := s.client.ListCharacters(s.ctx, false)
	s.Require().NoError(err)
	s.Len(characters, 1)

	sheet, err := s.client.GetSheet(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Equal("Aldric", sheet.Character.Name)
	s.NotEmpty(sheet.Tabs)

	level := 5
	updated, err := s.client.UpdateCharacter(s.ctx, ch.ID, &sheetsvc.CharacterPatch{Level: &level})
	s.Require().NoError(err)
	s.Equal(5, updated.Level)

	s.Require().NoError(s.client.DeleteCharacter(s.ctx, ch.ID))

	_, err = s.client.GetSheet(s.ctx, ch.ID)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestErrorDecoding() {
	_, err := s.client.GetSheet(s.ctx, 9999)
	s.Require().Error(err)
	s.Equal(errors.CodeNotFound, errors.GetCode(err))

	_, err = s.client.CreateTemplate(s.ctx, "", entities.TemplateConfig{})
	s.Require().Error(err)
	s.Equal(errors.CodeInvalidArgument, errors.GetCode(err))
}

func (s *ClientTestSuite) TestEquipment() {
	ch, err := s.client.CreateCharacter(s.ctx, "Aldric", 0)
	s.Require().NoError(err)

	equipment, armor, err := s.client.UpdateEquipment(s.ctx, ch.ID, map[entities.SlotName]string{
		entities.SlotHead: `{"name":"Iron Helm","ac_bonus":2}`,
	})
	s.Require().NoError(err)
	s.Equal(2, armor)
	s.Contains(equipment[entities.SlotHead], "Iron Helm")
}

func (s *ClientTestSuite) TestExportImport() {
	ch, err := s.client.CreateCharacter(s.ctx, "Aldric", 0)
	s.Require().NoError(err)

	data, err := s.client.ExportCharacter(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Contains(string(data), "Aldric")

	imported, err := s.client.ImportCharacter(s.ctx, data, "")
	s.Require().NoError(err)
	s.Equal("Aldric", imported.Name)
	s.NotEqual(ch.ID, imported.ID)

	renamed, err := s.client.ImportCharacter(s.ctx, data, "Brennan")
	s.Require().NoError(err)
	s.Equal("Brennan", renamed.Name)
}

func (s *ClientTestSuite) TestTemplates() {
	tmpl, err := s.client.CreateTemplate(s.ctx, "Knight", entities.TemplateConfig{
		Tabs: []entities.Tab{entities.TabMain, entities.TabStats},
	})
	s.Require().NoError(err)

	fetched, err := s.client.GetTemplate(s.ctx, tmpl.ID)
	s.Require().NoError(err)
	s.Equal("Knight", fetched.Name)

	templates, err := s.client.ListTemplates(s.ctx)
	s.Require().NoError(err)
	s.Len(templates, 1)

	ch, err := s.client.CreateCharacterFromTemplate(s.ctx, tmpl.ID, "Squire")
	s.Require().NoError(err)
	s.Equal(tmpl.ID, ch.TemplateID)

	sheet, err := s.client.GetSheet(s.ctx, ch.ID)
	s.Require().NoError(err)
	s.Require().NotNil(sheet.Template)
	s.Equal("Knight", sheet.Template.Name)

	s.Require().NoError(s.client.DeleteTemplate(s.ctx, tmpl.ID))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestConfigValidate(t *testing.T) {
	_, err := client.New(&client.Config{})
	if err == nil {
		t.Fatal("expected validation error")
	}
}
