package dto

import (
	"encoding/json"
	"strings"
)

// StringList accepts either a JSON array of strings or a single delimited
// string ("Lyon, Paris" or "a@x;b@y"). The admin form submits the latter.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = splitDelimited(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	var out []string
	for _, s := range many {
		out = append(out, splitDelimited(s)...)
	}
	*l = out
	return nil
}

// splitDelimited splits on commas and semicolons and drops empty entries.
func splitDelimited(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type UpsertRoutesRequest struct {
	Cities StringList `json:"cities"`
	Emails StringList `json:"emails"`
}

type RouteView struct {
	City  string `json:"city"`
	Email string `json:"email"`
}

type RouteListResponse struct {
	Routes []RouteView `json:"routes"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserView struct {
	Username string `json:"username"`
}

type UserListResponse struct {
	Users []UserView `json:"users"`
}

type SettingsResponse struct {
	DefaultEmail string `json:"default_email"`
}

type UpdateSettingsRequest struct {
	DefaultEmail string `json:"default_email"`
}
