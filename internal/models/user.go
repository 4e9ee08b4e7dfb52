package models

// User represents a registered account. ID doubles as the bearer token.
type User struct {
	ID       string              `json:"id"`
	Username string              `json:"username"`
	Password string              `json:"password"`
	Projects map[string]*Project `json:"projects"`
}

// Clone returns a deep copy of the user including all projects and files
func (u *User) Clone() *User {
	c := &User{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		Projects: make(map[string]*Project, len(u.Projects)),
	}
	for name, p := range u.Projects {
		c.Projects[name] = p.Clone()
	}
	return c
}
