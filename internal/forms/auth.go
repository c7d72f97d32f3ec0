package forms

import "strings"

// LoginForm is the email/password pair of the login screen.
type LoginForm struct {
	Email    string
	Password string
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if !validEmail(f.Email) {
		errs["email"] = "El email no es válido"
	}
	if f.Password == "" {
		errs["password"] = "La contraseña es obligatoria"
	}
	return errs
}

// UserForm creates a new account from the admin screen.
type UserForm struct {
	Email    string
	Password string
	Role     string
}

func (f *UserForm) Validate() Errors {
	errs := Errors{}
	if !validEmail(f.Email) {
		errs["email"] = "El email no es válido"
	}
	if len(f.Password) < 6 {
		errs["password"] = "La contraseña debe tener al menos 6 caracteres"
	}
	if f.Role != "" && f.Role != "ADMIN" && f.Role != "USER" {
		errs["role"] = "El rol no es válido"
	}
	return errs
}

// EstadoForm names a new or renamed estado.
type EstadoForm struct {
	Nombre string
}

func (f *EstadoForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Nombre) == "" {
		errs["nombre"] = "El nombre es obligatorio"
	}
	return errs
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
