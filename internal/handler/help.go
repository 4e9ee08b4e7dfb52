package handler

import "github.com/beevik/etree"

const helpText = `
Mock backend for a deployment platform.

1. Users
- POST /user/create
  Create an account from {"username", "password"}
- POST /user/login
  Log in with {"username", "password"}, returns {"token"}

2. Projects (send the token as the raw Authorization header)
- POST /project
  Create a project from {"name"}
- GET /projects
  List all projects of the current user
- POST /project/{projectId}/upload
  Merge {"files": {"<key>": "<content>"}} into the project

3. Preview
- GET /{user}/{project}/{key}
  Returns {"content"} of the file if it exists

4. Debug
- GET /dump
  Dump every stored user & project
`

// renderHelpPage builds the HTML page served at "/"
func renderHelpPage() (string, error) {
	doc := etree.NewDocument()
	html := doc.CreateElement("html")

	head := html.CreateElement("head")
	head.CreateElement("title").SetText("deploy-mock")

	body := html.CreateElement("body")
	body.CreateElement("h1").SetText("deploy-mock")
	body.CreateElement("pre").SetText(helpText)

	doc.Indent(2)
	return doc.WriteToString()
}
