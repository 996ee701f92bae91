package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Passw0rd":  true,
		"passw0rd":  false,
		"PASSW0RD":  false,
		"Password":  false,
		"Pa5":       false,
		"Str0ngerX": true,
	}
	for input, want := range cases {
		if got := IsStrongPassword(input); got != want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)
	_, ok = IsValidDateTime("2024-01-15 10:30")
	assert.False(t, ok)
}

type sampleRequest struct {
	Email  string   `json:"email" validate:"required,email"`
	Status string   `json:"status" validate:"oneof=PENDING APPROVED"`
	IDs    []string `json:"employee_ids" validate:"min=1"`
	Rating int      `json:"rating" validate:"gte=0,lte=5"`
}

func TestStruct(t *testing.T) {
	errs := Struct(sampleRequest{Email: "a@b.cd", Status: "PENDING", IDs: []string{"x"}, Rating: 3})
	assert.Nil(t, errs)
	assert.NoError(t, errs.Err())

	errs = Struct(sampleRequest{Email: "", Status: "DONE", Rating: 9})
	require.Len(t, errs, 4)

	m := errs.ToMap()
	assert.Equal(t, "email is required", m["email"])
	assert.Equal(t, "status must be one of [PENDING APPROVED]", m["status"])
	assert.Contains(t, m, "employee_ids")
	assert.Equal(t, "rating must be less than or equal to 5", m["rating"])
	assert.Error(t, errs.Err())
}

func TestValidationErrors_ToMapKeepsFirst(t *testing.T) {
	var errs ValidationErrors
	errs.Add("start_date", "start_date is required")
	errs.Add("start_date", "start_date is invalid")

	assert.Equal(t, map[string]string{"start_date": "start_date is required"}, errs.ToMap())
	assert.Equal(t, "start_date: start_date is required; start_date: start_date is invalid", errs.Error())
}
