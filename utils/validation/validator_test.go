package validation

import (
	"testing"
)

type sampleForm struct {
	Name          string `validate:"required,min=2,max=100"`
	GuardianEmail string `validate:"required,email"`
	GuardianPhone string `validate:"required,phone"`
	Program       string `validate:"required,oneof=primary secondary sixth_form"`
}

func TestCheckReturnsAllViolations(t *testing.T) {
	v := NewValidator()

	form := sampleForm{
		Name:          "A",
		GuardianEmail: "not-an-email",
		GuardianPhone: "abc",
		Program:       "primary",
	}

	fieldErrors := v.Check(form)
	if len(fieldErrors) != 3 {
		t.Fatalf("got %d field errors, want 3: %+v", len(fieldErrors), fieldErrors)
	}

	byField := map[string]string{}
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Message
	}

	if _, ok := byField["name"]; !ok {
		t.Error("expected an error for name")
	}
	if msg := byField["guardian_email"]; msg != "Invalid email format" {
		t.Errorf("guardian_email message = %q", msg)
	}
	if msg := byField["guardian_phone"]; msg != "Invalid phone number format" {
		t.Errorf("guardian_phone message = %q", msg)
	}
}

func TestCheckValidStruct(t *testing.T) {
	v := NewValidator()

	form := sampleForm{
		Name:          "Amara Osei",
		GuardianEmail: "guardian@example.com",
		GuardianPhone: "+44 20 7946 0958",
		Program:       "sixth_form",
	}

	if fieldErrors := v.Check(form); fieldErrors != nil {
		t.Fatalf("expected no errors, got %+v", fieldErrors)
	}
}

func TestPhoneRegex(t *testing.T) {
	valid := []string{
		"+2348012345678",
		"08012345678",
		"+44 (0)20 7946-0958",
		"020 7946 0958",
	}
	for _, p := range valid {
		if !PhoneRegex.MatchString(p) {
			t.Errorf("expected %q to be a valid phone number", p)
		}
	}

	invalid := []string{
		"",
		"12345",
		"phone",
		"+",
		"++2348012345678",
	}
	for _, p := range invalid {
		if PhoneRegex.MatchString(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestOneOfMessageListsChoices(t *testing.T) {
	v := NewValidator()

	form := sampleForm{
		Name:          "Amara Osei",
		GuardianEmail: "guardian@example.com",
		GuardianPhone: "08012345678",
		Program:       "nursery",
	}

	fieldErrors := v.Check(form)
	if len(fieldErrors) != 1 {
		t.Fatalf("got %d field errors, want 1: %+v", len(fieldErrors), fieldErrors)
	}
	if fieldErrors[0].Field != "program" {
		t.Errorf("field = %q, want program", fieldErrors[0].Field)
	}
	if fieldErrors[0].Message != "program must be one of: primary, secondary, sixth_form" {
		t.Errorf("message = %q", fieldErrors[0].Message)
	}
}
