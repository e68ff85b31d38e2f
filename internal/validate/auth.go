package validate

import "unicode/utf8"

// LoginForm is the sign-in input.
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the login schema. The normalized value is the form itself;
// email and password are submitted exactly as entered.
func (f LoginForm) Validate() (LoginForm, Issues) {
	var issues Issues
	if msg := checkEmail(f.Email); msg != "" {
		issues.add(msg, Field("email"))
	}
	if f.Password == "" {
		issues.add("Password is required", Field("password"))
	}
	return f, issues
}

// RegisterForm is the account creation input.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

// Validate checks the registration schema.
func (f RegisterForm) Validate() (RegisterForm, Issues) {
	var issues Issues
	switch {
	case f.Name == "":
		issues.add("Name is required", Field("name"))
	case trimmedLen(f.Name) < 2:
		issues.add("Name must be at least 2 characters", Field("name"))
	}
	if msg := checkEmail(f.Email); msg != "" {
		issues.add(msg, Field("email"))
	}
	switch {
	case f.Password == "":
		issues.add("Password is required", Field("password"))
	case utf8.RuneCountInString(f.Password) < 6:
		issues.add("Password must be at least 6 characters", Field("password"))
	}
	return f, issues
}
