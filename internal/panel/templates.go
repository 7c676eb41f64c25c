package panel

import (
	"html/template"
	"io"
	"net/url"

	"equipment-panel/internal/dto"
)

// Page - всё, что нужно шаблону index для одного рендера.
type Page struct {
	Viewer         dto.MeDTO
	IsAdmin        bool
	EquipmentTable Table
	UsersTable     Table
	UserOptions    []Option
	RoleOptions    []Option
	EquipmentForm  url.Values
	UserForm       url.Values
	Alert          string
}

type LoginPage struct {
	Username string
	Error    string
}

func BuildPage(s State) Page {
	userForm := s.UserForm
	return Page{
		Viewer:         s.Viewer,
		IsAdmin:        s.Viewer.IsAdmin(),
		EquipmentTable: EquipmentTable(s.Equipment, s.Viewer),
		UsersTable:     UsersTable(s.Users),
		UserOptions:    UserOptions(s.Users, s.EquipmentForm.Get("user_id")),
		RoleOptions:    RoleOptions(roleOrDefault(userForm.Get("role"))),
		EquipmentForm:  s.EquipmentForm,
		UserForm:       userForm,
		Alert:          s.Alert,
	}
}

func RenderPage(w io.Writer, s State) error {
	return indexTemplate.Execute(w, BuildPage(s))
}

func RenderLogin(w io.Writer, p LoginPage) error {
	return loginTemplate.Execute(w, p)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="sr">
<head>
<meta charset="utf-8">
<title>Evidencija opreme</title>
</head>
<body>
<header>
  <h1>Evidencija opreme</h1>
  <p id="current-user">{{.Viewer.Username}} ({{.Viewer.Role}})</p>
  <form method="post" action="/logout"><button id="logout-btn" type="submit">Odjava</button></form>
</header>
{{if .Alert}}
<dialog id="alert" open>
  <p>{{.Alert}}</p>
  <form method="dialog"><button type="submit">U redu</button></form>
</dialog>
{{end}}
<section>
  <h2>Oprema</h2>
  <form method="get" action="/export.csv"><button id="export-csv-btn" type="submit">Izvoz CSV</button></form>
  <form method="get" action="/export.xlsx"><button id="export-xlsx-btn" type="submit">Izvoz XLSX</button></form>
  {{template "table" .EquipmentTable}}
{{if .IsAdmin}}
  <h3>Dodaj opremu</h3>
  <form id="add-equipment-form" method="post" action="/equipment">
    <input name="name" placeholder="Naziv" value="{{.EquipmentForm.Get "name"}}" required>
    <input name="serial_number" placeholder="Serijski broj" value="{{.EquipmentForm.Get "serial_number"}}" required>
    <input name="location" placeholder="Lokacija" value="{{.EquipmentForm.Get "location"}}" required>
    <input name="status" placeholder="Status" value="{{.EquipmentForm.Get "status"}}" required>
    <select name="user_id">{{template "options" .UserOptions}}</select>
    <button type="submit">Dodaj</button>
  </form>
{{end}}
</section>
{{if .IsAdmin}}
<section>
  <h2>Korisnici</h2>
  {{template "table" .UsersTable}}
  <h3>Dodaj korisnika</h3>
  <form id="add-user-form" method="post" action="/users">
    <input name="username" placeholder="Korisničko ime" value="{{.UserForm.Get "username"}}" required>
    <input name="password" type="password" placeholder="Lozinka" required>
    <select name="role">{{template "options" .RoleOptions}}</select>
    <button type="submit">Dodaj</button>
  </form>
</section>
{{end}}
</body>
</html>
{{define "options"}}{{range .}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}{{end}}
{{define "table"}}<table id="{{.ID}}">
  <thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>{{range .Rows}}
    <tr>{{range .Cells}}<td>{{.}}</td>{{end}}{{with .RoleForm}}<td><form method="post" action="{{.Path}}"><select name="role">{{template "options" .Options}}</select><button type="submit">Sačuvaj</button></form></td>{{end}}{{range .Actions}}<td><form method="post" action="{{.Path}}"><button type="submit">{{.Label}}</button></form></td>{{end}}</tr>{{end}}
  </tbody>
</table>{{end}}
`))

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="sr">
<head>
<meta charset="utf-8">
<title>Prijava</title>
</head>
<body>
<h1>Prijava</h1>
{{if .Error}}<p id="login-error">{{.Error}}</p>{{end}}
<form id="login-form" method="post" action="/login">
  <input name="username" placeholder="Korisničko ime" value="{{.Username}}" required>
  <input name="password" type="password" placeholder="Lozinka" required>
  <button type="submit">Prijavi se</button>
</form>
</body>
</html>
`))
