package object

// User is a database login. Password is empty when the user has none
// (e.g. a role-only account authenticated out of band).
type User struct {
	Name      string
	Password  string
	Roles     []Role
	Encrypted bool
}

// NewUser builds a user with the given name and password.
func NewUser(name, password string) User {
	return User{Name: name, Password: password}
}

// AddRole grants a role to the user.
func (u User) AddRole(r Role) User {
	u.Roles = append(append([]Role{}, u.Roles...), r)
	return u
}

// WithEncryptedPassword marks the user's password as pre-encrypted
// rather than plaintext.
func (u User) WithEncryptedPassword() User {
	u.Encrypted = true
	return u
}
