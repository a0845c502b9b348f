package usecases

import (
	"fmt"
	"regexp"
	"strings"

	"revebot.backend/internal/domain/entities"
	domainerrors "revebot.backend/internal/domain/errors"
)

// phoneRe accepts +1234567890 or +(123)4567890 style numbers
var phoneRe = regexp.MustCompile(`^\+?(\(\d{3}\))\d{3,12}|\+\d{6,15}$`)

const invalidPhoneMessage = "The phone format is invalid. Invalid format: +1234567890 or +(123)4567890"

func validateStep1(input *entities.Step1Input) domainerrors.FieldErrors {
	errs := domainerrors.FieldErrors{}

	if strings.TrimSpace(input.Business) == "" {
		errs.Add("business", "The Business Name field is required.")
	}

	if strings.TrimSpace(input.Phone) == "" {
		errs.Add("phone", "The Phone Number field is required.")
	} else if !phoneRe.MatchString(strings.TrimSpace(input.Phone)) {
		errs.Add("phone", invalidPhoneMessage)
	}

	if len(input.Phones) == 0 {
		errs.Add("phones", "The Phones list field is required.")
	}
	for i, phone := range input.Phones {
		phone = strings.TrimSpace(phone)
		if phone == "" {
			errs.Add(fmt.Sprintf("phones.%d", i), "The Phones list field is required.")
		} else if !phoneRe.MatchString(phone) {
			errs.Add(fmt.Sprintf("phones.%d", i), invalidPhoneMessage)
		}
	}

	if strings.TrimSpace(input.AwayMessage) == "" {
		errs.Add("awayMessage", "The away message field is required.")
	}

	return errs
}

func validateStep4(input *entities.Step4Input) domainerrors.FieldErrors {
	errs := domainerrors.FieldErrors{}

	if input.Package == "" {
		errs.Add("package", "You should select a package.")
	}
	if !input.Agree {
		errs.Add("agree", "Please, agree with User Software License Agreement.")
	}

	return errs
}
