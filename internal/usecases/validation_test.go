package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"revebot.backend/internal/domain/entities"
)

func TestPhonePattern(t *testing.T) {
	valid := []string{
		"+1234567890",
		"+(123)4567890",
		"(123)456789",
		"+123456",
	}
	for _, phone := range valid {
		assert.True(t, phoneRe.MatchString(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"not-a-phone",
		"+12",
		"12345",
	}
	for _, phone := range invalid {
		assert.False(t, phoneRe.MatchString(phone), "expected %q to be invalid", phone)
	}
}

func TestValidateStep1(t *testing.T) {
	errs := validateStep1(&entities.Step1Input{})
	assert.True(t, errs.Any())
	assert.Equal(t, "The Business Name field is required.", errs["business"])
	assert.Equal(t, "The Phone Number field is required.", errs["phone"])
	assert.Equal(t, "The Phones list field is required.", errs["phones"])
	assert.Equal(t, "The away message field is required.", errs["awayMessage"])

	errs = validateStep1(&entities.Step1Input{
		Business:    "Acme",
		Phone:       "bad",
		Phones:      []string{"+1234567890", "nope"},
		AwayMessage: "brb",
	})
	assert.Contains(t, errs, "phone")
	assert.NotContains(t, errs, "phones.0")
	assert.Contains(t, errs, "phones.1")

	errs = validateStep1(&entities.Step1Input{
		Business:    "Acme",
		Phone:       "+1234567890",
		Phones:      []string{"+1234567890"},
		AwayMessage: "brb",
	})
	assert.False(t, errs.Any())
}

func TestValidateStep4(t *testing.T) {
	errs := validateStep4(&entities.Step4Input{})
	assert.Equal(t, "You should select a package.", errs["package"])
	assert.Equal(t, "Please, agree with User Software License Agreement.", errs["agree"])

	errs = validateStep4(&entities.Step4Input{Package: "basic", Agree: true})
	assert.False(t, errs.Any())
}
