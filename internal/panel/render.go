package panel

import (
	"strconv"

	"equipment-panel/internal/dto"
	"equipment-panel/pkg/constants"
)

const (
	EquipmentTableID = "equipment-table"
	UsersTableID     = "users-table"
)

var (
	equipmentHeader = []string{"ID", "Naziv", "Serijski broj", "Lokacija", "Status", "Korisnik"}
	usersHeader     = []string{"ID", "Korisničko ime", "Uloga"}
	actionsHeader   = "Akcije"
)

// Action - кнопка в строке таблицы, отправляет POST на Path.
type Action struct {
	Label string
	Path  string
}

// RoleForm - выбор роли в строке пользователя.
type RoleForm struct {
	Path    string
	Options []Option
}

type Row struct {
	ID       uint64
	Cells    []string
	Actions  []Action
	RoleForm *RoleForm
}

type Table struct {
	ID     string
	Header []string
	Rows   []Row
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// EquipmentTable строит таблицу оборудования в порядке ответа сервера.
// Колонка удаления есть только у администратора.
func EquipmentTable(items []dto.EquipmentDTO, viewer dto.MeDTO) Table {
	admin := viewer.IsAdmin()

	header := append([]string(nil), equipmentHeader...)
	if admin {
		header = append(header, actionsHeader)
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		id := strconv.FormatUint(item.ID, 10)
		row := Row{
			ID: item.ID,
			Cells: []string{
				id,
				item.Name,
				item.SerialNumber,
				item.Location,
				item.Status,
				item.User.String,
			},
		}
		if admin {
			row.Actions = []Action{{Label: "Obriši", Path: "/equipment/" + id + "/delete"}}
		}
		rows = append(rows, row)
	}

	return Table{ID: EquipmentTableID, Header: header, Rows: rows}
}

// UsersTable виден только администратору, поэтому действия есть всегда.
func UsersTable(users []dto.UserDTO) Table {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		id := strconv.FormatUint(u.ID, 10)
		rows = append(rows, Row{
			ID:    u.ID,
			Cells: []string{id, u.Username, u.Role.String()},
			RoleForm: &RoleForm{
				Path:    "/users/" + id + "/role",
				Options: RoleOptions(u.Role),
			},
			Actions: []Action{{Label: "Obriši", Path: "/users/" + id + "/delete"}},
		})
	}

	header := append([]string(nil), usersHeader...)
	header = append(header, "Promena uloge", actionsHeader)
	return Table{ID: UsersTableID, Header: header, Rows: rows}
}

// UserOptions - варианты для select[name=user_id]: пустой "без пользователя",
// затем все пользователи.
func UserOptions(users []dto.UserDTO, selected string) []Option {
	opts := make([]Option, 0, len(users)+1)
	opts = append(opts, Option{Value: "", Label: "-- bez korisnika --", Selected: selected == ""})
	for _, u := range users {
		value := strconv.FormatUint(u.ID, 10)
		opts = append(opts, Option{Value: value, Label: u.Username, Selected: value == selected})
	}
	return opts
}

func RoleOptions(selected constants.Role) []Option {
	roles := []constants.Role{constants.RoleUser, constants.RoleAdmin}
	opts := make([]Option, 0, len(roles))
	for _, r := range roles {
		opts = append(opts, Option{Value: r.String(), Label: r.String(), Selected: r == selected})
	}
	return opts
}
