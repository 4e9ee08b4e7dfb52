package models

// Project represents a named set of files owned by one user
type Project struct {
	Name  string            `json:"name"`
	Files map[string]string `json:"files"` // file key -> content
}

// NewProject returns an empty project
func NewProject(name string) *Project {
	return &Project{Name: name, Files: map[string]string{}}
}

// Clone returns a deep copy of the project
func (p *Project) Clone() *Project {
	files := make(map[string]string, len(p.Files))
	for k, v := range p.Files {
		files[k] = v
	}
	return &Project{Name: p.Name, Files: files}
}

// Merge copies every incoming entry into the project, overwriting existing keys.
// Keys absent from files are left as they are.
func (p *Project) Merge(files map[string]string) {
	if p.Files == nil {
		p.Files = make(map[string]string, len(files))
	}
	for k, v := range files {
		p.Files[k] = v
	}
}
