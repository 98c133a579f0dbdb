package validators

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
	model "github.com/oscar503sv/gestion-de-proyectos/internal/models"
	repository "github.com/oscar503sv/gestion-de-proyectos/internal/repositories"
)

// UserFields holds the validated values; nil means the field was not sent.
type UserFields struct {
	Name     *string
	Email    *string
	Password *string
	Role     *constants.Role
}

const (
	minUserName    = 2
	maxUserName    = 50
	minPasswordLen = 6
)

// Letters (accented included), spaces, hyphens and apostrophes.
var userNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ' -]+$`)

var userEmail = EmailRule{
	Required: "El email es requerido",
	Format:   "El formato del email es inválido",
}

func UserCreate(c *Collector, r repository.Reader, b Body) (UserFields, error) {
	var f UserFields

	if name, ok := userName(c, b); ok {
		f.Name = &name
	}

	if email, ok := c.Email(b, "email", userEmail); ok {
		taken, err := emailTaken(r, email, 0)
		if err != nil {
			return f, err
		}
		if taken {
			c.Add("El email ya está en uso")
		} else {
			f.Email = &email
		}
	}

	if pw, ok := userPassword(c, b); ok {
		f.Password = &pw
	}

	if role, ok := userRole(c, b); ok {
		f.Role = &role
	}

	return f, nil
}

// UserUpdate validates the fields present in b against target.
func UserUpdate(c *Collector, r repository.Reader, b Body, target *model.User) (UserFields, error) {
	var f UserFields

	if b.Has("name") {
		if name, ok := userName(c, b); ok {
			f.Name = &name
		}
	}

	if b.Has("email") {
		if email, ok := c.Email(b, "email", userEmail); ok {
			taken, err := emailTaken(r, email, target.ID)
			if err != nil {
				return f, err
			}
			if taken {
				c.Add("El email ya está en uso por otro usuario")
			} else {
				f.Email = &email
			}
		}
	}

	if b.Has("password") {
		if pw, ok := userPassword(c, b); ok {
			f.Password = &pw
		}
	}

	if b.Has("role") {
		role, ok := userRole(c, b)
		if ok && target.IsManager() && role != constants.RoleManager {
			owned, err := projectsCreatedBy(r, target.ID)
			if err != nil {
				return f, err
			}
			if owned > 0 {
				c.Add("No se puede cambiar el rol de un gerente con proyectos creados")
				ok = false
			}
		}
		if ok {
			f.Role = &role
		}
	}

	return f, nil
}

// userName runs the length and character checks independently so a name
// failing both reports both.
func userName(c *Collector, b Body) (string, bool) {
	s, isString := b.String("name")
	s = strings.TrimSpace(s)
	if !isString || s == "" {
		c.Add("El nombre es requerido")
		return "", false
	}

	ok := true
	if n := utf8.RuneCountInString(s); n < minUserName || n > maxUserName {
		c.Add("El nombre completo debe tener entre 2 y 50 caracteres")
		ok = false
	}
	if !userNamePattern.MatchString(s) {
		c.Add("El nombre solo puede contener letras, espacios, guiones y apóstrofos")
		ok = false
	}
	return s, ok
}

func userPassword(c *Collector, b Body) (string, bool) {
	pw, isString := b.String("password")
	if !isString || strings.TrimSpace(pw) == "" {
		c.Add("La contraseña es requerida")
		return "", false
	}
	if utf8.RuneCountInString(pw) < minPasswordLen {
		c.Add("La contraseña debe tener al menos 6 caracteres")
		return "", false
	}
	return pw, true
}

func userRole(c *Collector, b Body) (constants.Role, bool) {
	s, isString := b.String("role")
	s = strings.ToLower(strings.TrimSpace(s))
	if !isString || s == "" {
		c.Add("El rol es requerido")
		return "", false
	}
	role := constants.Role(s)
	if !role.Valid() {
		c.Addf("El rol debe ser uno de: %s", constants.Join(constants.Roles))
		return "", false
	}
	return role, true
}

func emailTaken(r repository.Reader, email string, except uint) (bool, error) {
	users, err := r.Users()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != except && u.HasEmail(email) {
			return true, nil
		}
	}
	return false, nil
}

func projectsCreatedBy(r repository.Reader, userID uint) (int, error) {
	projects, err := r.Projects()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range projects {
		if p.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}
