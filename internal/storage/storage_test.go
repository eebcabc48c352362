package storage

import (
	"encoding/json"
	"errors"
	"testing"

	"staff_portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_EmptyCollectionsAreArrays(t *testing.T) {
	data, err := Encode(&models.Snapshot{})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"users", "employees", "managers", "admins", "messages"} {
		assert.Equal(t, "[]", string(raw[key]), key)
	}
}

func TestEncode_NullTokensArePreserved(t *testing.T) {
	s := Empty()
	s.Users = append(s.Users, models.User{Email: "a@x.com", Password: "pw", Role: models.RoleAdmin, Verified: true})

	data, err := Encode(s)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"verifyToken": null`)
	assert.Contains(t, string(data), `"resetToken": null`)
}

func TestDecode_KeepsAllFields(t *testing.T) {
	tok := "abc"
	in := Empty()
	in.Users = []models.User{{Email: "a@x.com", Password: "pw", Role: models.RoleEmployee, VerifyToken: &tok}}
	in.Employees = []models.Employee{{ID: 4, Name: "Ann", Email: "a@x.com", Department: "R&D", Position: "Dev", Salary: "100"}}
	in.Managers = []models.Manager{{ID: 1, Email: "m@x.com"}}
	in.Admins = []models.Admin{{ID: 1, Email: "root@x.com"}}
	in.Messages = []models.Message{{ID: 1, From: "a", To: "b", Message: "hi", Timestamp: "2024-01-01T00:00:00.000Z"}}
	in.Sequences = models.Sequences{Employees: 4, Messages: 1}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecode_BlankOrNullIsMalformed(t *testing.T) {
	for _, in := range []string{"", "  \n", "null", " null\n"} {
		_, err := Decode([]byte(in))
		require.Error(t, err, "%q", in)
		assert.ErrorIs(t, err, ErrIO)
	}
}

func TestDecodeEncode_KeepsUnknownKeys(t *testing.T) {
	in := `{
  "users": [
    {
      "email": "a@x.com",
      "password": "pw",
      "role": "Admin",
      "verified": true,
      "verifyToken": null,
      "resetToken": null,
      "createdAt": "2024-01-01",
      "id": 7
    }
  ],
  "employees": [
    {
      "id": 1,
      "name": "Ann",
      "email": "ann@x.com",
      "department": "Sales",
      "position": "Dev",
      "salary": "100",
      "phone": "555-0100"
    }
  ],
  "managers": [
    {
      "id": 1,
      "email": "m@x.com",
      "team": [
        "ann@x.com"
      ]
    }
  ],
  "admins": [
    {
      "id": 1,
      "email": "root@x.com",
      "super": true
    }
  ],
  "messages": [
    {
      "id": 1,
      "from": "a",
      "to": "b",
      "message": "hi",
      "timestamp": "2024-01-01T00:00:00.000Z",
      "read": false
    }
  ],
  "sequences": {
    "employees": 1,
    "messages": 1
  },
  "settings": {
    "theme": "dark"
  }
}`

	s, err := Decode([]byte(in))
	require.NoError(t, err)

	assert.JSONEq(t, `7`, string(s.Users[0].Extra["id"]))
	assert.JSONEq(t, `"555-0100"`, string(s.Employees[0].Extra["phone"]))
	assert.JSONEq(t, `{"theme":"dark"}`, string(s.Extra["settings"]))

	out, err := Encode(s)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestEncode_KeepsUnknownKeysAfterMutation(t *testing.T) {
	s, err := Decode([]byte(`{"users":[{"email":"a@x.com","createdAt":"2024"}],"settings":1}`))
	require.NoError(t, err)

	s.Users[0].Verified = true
	s.Messages = append(s.Messages, models.Message{ID: 1, From: "a", To: "b", Message: "hi"})

	out, err := Encode(s)
	require.NoError(t, err)

	var raw struct {
		Users    []map[string]json.RawMessage `json:"users"`
		Settings json.RawMessage              `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.JSONEq(t, `"2024"`, string(raw.Users[0]["createdAt"]))
	assert.JSONEq(t, `true`, string(raw.Users[0]["verified"]))
	assert.JSONEq(t, `1`, string(raw.Settings))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
}

func TestDecode_LegacyDocumentWithoutSequences(t *testing.T) {
	s, err := Decode([]byte(`{"users":[],"employees":[{"id":1,"name":"x"}],"managers":[],"admins":[]}`))
	require.NoError(t, err)

	assert.Len(t, s.Employees, 1)
	assert.NotNil(t, s.Messages)
	assert.Zero(t, s.Sequences.Employees)
}

func TestClone_IsIndependent(t *testing.T) {
	s := Empty()
	s.Employees = append(s.Employees, models.Employee{ID: 1, Name: "a"})

	c, err := Clone(s)
	require.NoError(t, err)

	c.Employees[0].Name = "b"
	assert.Equal(t, "a", s.Employees[0].Name)
}
