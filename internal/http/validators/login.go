package validators

import "strings"

type Credentials struct {
	Email    string
	Password string
}

func Login(c *Collector, b Body) Credentials {
	var cred Credentials

	if email, ok := c.Email(b, "email", userEmail); ok {
		cred.Email = email
	}

	pw, isString := b.String("password")
	if !isString || strings.TrimSpace(pw) == "" {
		c.Add("La contraseña es requerida")
	} else {
		cred.Password = pw
	}

	return cred
}
