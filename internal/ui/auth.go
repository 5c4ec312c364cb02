package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/myflix/myflix/internal/models"
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// authForm holds the focusable text inputs backing the login and signup views.
//
// Login uses the email and password fields. Signup adds the full name field.
type authForm struct {
	inputs []textinput.Model
	focus  int
}

func newAuthForm() authForm {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authForm{inputs: []textinput.Model{name, email, password}}
}

// fields returns the indexes active for the given view.
func (f *authForm) fields(signup bool) []int {
	if signup {
		return []int{fieldName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

// focusFirst resets focus to the first active field.
func (f *authForm) focusFirst(signup bool) {
	active := f.fields(signup)
	f.focus = active[0]
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[f.focus].Focus()
}

// advance moves focus to the next active field, wrapping around.
func (f *authForm) advance(signup bool) {
	active := f.fields(signup)
	next := active[0]
	for i, idx := range active {
		if idx == f.focus {
			next = active[(i+1)%len(active)]
			break
		}
	}
	f.inputs[f.focus].Blur()
	f.focus = next
	f.inputs[f.focus].Focus()
}

// user assembles a [models.User] from the current field values.
func (f *authForm) user() models.User {
	return models.User{
		FullName: f.inputs[fieldName].Value(),
		Email:    f.inputs[fieldEmail].Value(),
		Password: f.inputs[fieldPassword].Value(),
	}
}

// reset clears every field.
func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}
