package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["Lyon","Paris"]`, []string{"Lyon", "Paris"}},
		{"comma string", `"Lyon, Paris"`, []string{"Lyon", "Paris"}},
		{"semicolon string", `"a@x.com;b@y.com"`, []string{"a@x.com", "b@y.com"}},
		{"mixed delimiters", `"a@x.com; b@y.com, c@z.com"`, []string{"a@x.com", "b@y.com", "c@z.com"}},
		{"delimited inside array", `["a@x.com,b@y.com","c@z.com"]`, []string{"a@x.com", "b@y.com", "c@z.com"}},
		{"empty entries dropped", `" , Lyon ,, "`, []string{"Lyon"}},
		{"empty string", `""`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tc.in), &got))
			require.Equal(t, StringList(tc.want), got)
		})
	}
}

func TestStringListRejectsWrongType(t *testing.T) {
	var got StringList
	require.Error(t, json.Unmarshal([]byte(`42`), &got))
}

func TestUpsertRoutesRequestMixedForms(t *testing.T) {
	var req UpsertRoutesRequest
	raw := `{"cities":["Lyon","Paris"],"emails":"a@x.com; b@y.com"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	require.Equal(t, StringList{"Lyon", "Paris"}, req.Cities)
	require.Equal(t, StringList{"a@x.com", "b@y.com"}, req.Emails)
}
