package validators

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func body(t *testing.T, s string) Body {
	b, err := ParseBody(strings.NewReader(s))
	require.NoError(t, err)
	return b
}

func seededReader(t *testing.T) repository.Store {
	store := repository.NewMemoryStore()
	require.NoError(t, store.Update(context.Background(), func(w repository.Writer) error {
		if err := w.CreateUser(&model.User{Name: "Juan", Email: "juan@proyecto.com", Role: constants.RoleManager}); err != nil {
			return err
		}
		if err := w.CreateUser(&model.User{Name: "María", Email: "maria@proyecto.com", Role: constants.RoleMember}); err != nil {
			return err
		}
		return w.CreateProject(&model.Project{Name: "Desarrollo de Sitio Web", Status: constants.ProjectInProgress, CreatedBy: 1})
	}))
	return store
}

func TestParseBody(t *testing.T) {
	_, err := ParseBody(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidJSON)

	_, err = ParseBody(strings.NewReader("[1,2]"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidJSON)

	b, err := ParseBody(strings.NewReader("   "))
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestBody_ID(t *testing.T) {
	b := body(t, `{"a": 3, "b": "3", "c": 0, "d": 1.5, "e": null, "f": -2}`)

	id, ok := b.ID("a")
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)

	for _, key := range []string{"b", "c", "d", "e", "f", "missing"} {
		_, ok := b.ID(key)
		assert.False(t, ok, key)
	}
}

func TestRequesterID(t *testing.T) {
	id, ok := RequesterID(body(t, `{"requestedBy": 2}`), "9")
	assert.True(t, ok)
	assert.Equal(t, uint(2), id)

	id, ok = RequesterID(Body{}, "9")
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)

	_, ok = RequesterID(body(t, `{"requestedBy": "2"}`), "9")
	assert.False(t, ok)

	_, ok = RequesterID(Body{}, "abc")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2030-01-02", "2030-01-02T17:00:00Z", "2030-01-02T17:00:00.123Z", "2030-01-02T17:00:00-05:00", "2030-01-02T17:00"} {
		_, ok := ParseDate(s, time.UTC)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"02/01/2030", "mañana", "2030-13-40"} {
		_, ok := ParseDate(s, time.UTC)
		assert.False(t, ok, s)
	}
}

func TestCollector_DateRejectsOnlyStrictlyPast(t *testing.T) {
	rule := DateRule{Required: "req", Format: "fmt", Past: "past"}

	var c Collector
	_, ok := c.Date(body(t, `{"d": "2026-10-15"}`), "d", rule, now)
	assert.True(t, ok, "today is accepted")

	_, ok = c.Date(body(t, `{"d": "2026-10-14"}`), "d", rule, now)
	assert.False(t, ok)

	_, ok = c.Date(body(t, `{"d": "15-10-2026"}`), "d", rule, now)
	assert.False(t, ok)

	assert.Equal(t, []string{"past", "fmt"}, c.messages)
}

func TestCollector_Err(t *testing.T) {
	var c Collector
	assert.NoError(t, c.Err())

	c.Add("a")
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(c.Err()))

	c.Forbid("b")
	err := c.Err()
	assert.Equal(t, http.StatusForbidden, apperrors.StatusCode(err))
	exc, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, exc.Errors)
}

func TestProjectCreate_AccumulatesEveryViolation(t *testing.T) {
	store := seededReader(t)

	var c Collector
	err := store.View(context.Background(), func(r repository.Reader) error {
		_, err := ProjectCreate(&c, r, body(t, `{"name": "ab", "description": "corta", "deadline": "2020-01-01", "status": "archivado", "createdBy": 2}`), now)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"El nombre del proyecto debe tener al menos 3 caracteres",
		"La descripción debe tener al menos 10 caracteres",
		"La fecha límite no puede ser anterior a hoy",
		"Solo los usuarios con rol de gerente pueden ser asignados como creadores",
		"El estado debe ser uno de: pendiente, en progreso, completado, cancelado",
	}, c.messages)
}

func TestProjectCreate_DuplicateNameIgnoresCaseAndBlanks(t *testing.T) {
	store := seededReader(t)

	var c Collector
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		_, err := ProjectCreate(&c, r, body(t, `{"name": "  desarrollo DE sitio web ", "description": "Una descripción larga", "deadline": "2030-01-01"}`), now)
		return err
	}))
	assert.Equal(t, []string{"Ya existe un proyecto con ese nombre"}, c.messages)
}

func TestProjectUpdate_OnlyChecksPresentFields(t *testing.T) {
	store := seededReader(t)

	var (
		c Collector
		f ProjectFields
	)
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		p, err := r.Project(1)
		require.NoError(t, err)
		f, err = ProjectUpdate(&c, r, body(t, `{"name": "Desarrollo de sitio web", "status": "completado"}`), p, now)
		return err
	}))
	assert.True(t, c.OK(), "renaming to its own name is not a duplicate")
	require.NotNil(t, f.Status)
	assert.Equal(t, constants.ProjectCompleted, *f.Status)
	assert.Nil(t, f.Description)
	assert.Nil(t, f.Deadline)

	require.NoError(t, store.Update(context.Background(), func(w repository.Writer) error {
		return w.CreateProject(&model.Project{Name: "App Móvil", CreatedBy: 1})
	}))

	var c2 Collector
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		p, _ := r.Project(2)
		_, err := ProjectUpdate(&c2, r, body(t, `{"name": "desarrollo de sitio web"}`), p, now)
		return err
	}))
	assert.Equal(t, []string{"Ya existe otro proyecto con ese nombre"}, c2.messages)
}

func TestTaskCreate_RequiredFields(t *testing.T) {
	store := seededReader(t)

	var c Collector
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		_, err := TaskCreate(&c, r, body(t, `{"projectId": 99, "assignedTo": "2", "priority": "urgente"}`), now)
		return err
	}))
	assert.Equal(t, []string{
		"El título de la tarea es requerido",
		"La descripción de la tarea es requerida",
		"El proyecto especificado no existe",
		"El ID del usuario asignado es requerido y debe ser un número",
		"La fecha de vencimiento es requerida",
		"La prioridad debe ser una de: baja, media, alta",
	}, c.messages)
}

func TestTaskCreate_Valid(t *testing.T) {
	store := seededReader(t)

	var (
		c Collector
		f TaskFields
	)
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		var err error
		f, err = TaskCreate(&c, r, body(t, `{"title": " Diseñar ", "description": "Crear diseños en Figma", "projectId": 1, "assignedTo": 2, "dueDate": "2030-05-01T17:00:00Z"}`), now)
		return err
	}))
	require.True(t, c.OK(), c.messages)
	assert.Equal(t, "Diseñar", *f.Title)
	assert.Nil(t, f.Priority)
	assert.Nil(t, f.Status)
	assert.Equal(t, uint(1), *f.ProjectID)
}

func TestUserCreate_NameFailingTwoRulesReportsBoth(t *testing.T) {
	store := seededReader(t)

	var c Collector
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		_, err := UserCreate(&c, r, body(t, `{"name": "7", "email": "JUAN@proyecto.com", "password": "123", "role": "admin"}`))
		return err
	}))
	assert.Equal(t, []string{
		"El nombre completo debe tener entre 2 y 50 caracteres",
		"El nombre solo puede contener letras, espacios, guiones y apóstrofos",
		"El email ya está en uso",
		"La contraseña debe tener al menos 6 caracteres",
		"El rol debe ser uno de: gerente, usuario",
	}, c.messages)
}

func TestUserUpdate_ManagerWithProjectsCannotBeDemoted(t *testing.T) {
	store := seededReader(t)

	var c Collector
	require.NoError(t, store.View(context.Background(), func(r repository.Reader) error {
		target, _ := r.User(1)
		_, err := UserUpdate(&c, r, body(t, `{"role": "usuario", "email": "juan@proyecto.com"}`), target)
		return err
	}))
	assert.Equal(t, []string{"No se puede cambiar el rol de un gerente con proyectos creados"}, c.messages)
}

func TestLogin(t *testing.T) {
	var c Collector
	Login(&c, body(t, `{"email": "no-es-email", "password": "  "}`))
	assert.Equal(t, []string{"El formato del email es inválido", "La contraseña es requerida"}, c.messages)

	var ok Collector
	cred := Login(&ok, body(t, `{"email": " Maria@Proyecto.com ", "password": "password123"}`))
	assert.True(t, ok.OK())
	assert.Equal(t, "maria@proyecto.com", cred.Email)
}
