package validations

import (
	"fmt"
	"regexp"

	"github.com/AzielCF/az-courier/config"
	pkgError "github.com/AzielCF/az-courier/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateConfig checks the structural invariants of a loaded
// configuration: required names, phone numbers that survive
// normalization, message types and their type-specific fields, and
// HH:MM fire times within 00:00-23:59. Violations are rejected here, at
// load time, never at fire time.
func ValidateConfig(cfg *config.Config) error {
	for i, contact := range cfg.Contacts.Personal {
		if err := validateContact(contact); err != nil {
			return pkgError.ValidationError(fmt.Sprintf("contacts.personal[%d] (%s): %s", i, contact.Name, err.Error()))
		}
		for j, message := range contact.Messages {
			if err := validateMessage(message); err != nil {
				return pkgError.ValidationError(fmt.Sprintf("contacts.personal[%d] (%s) message[%d]: %s", i, contact.Name, j, err.Error()))
			}
		}
	}

	for i, group := range cfg.Contacts.Groups {
		if err := validation.ValidateStruct(&group,
			validation.Field(&group.Name, validation.Required),
		); err != nil {
			return pkgError.ValidationError(fmt.Sprintf("contacts.groups[%d]: %s", i, err.Error()))
		}
		for j, message := range group.Messages {
			if err := validateMessage(message); err != nil {
				return pkgError.ValidationError(fmt.Sprintf("contacts.groups[%d] (%s) message[%d]: %s", i, group.Name, j, err.Error()))
			}
		}
	}

	return nil
}

func validateContact(contact config.Contact) error {
	if err := validation.ValidateStruct(&contact,
		validation.Field(&contact.Name, validation.Required),
		validation.Field(&contact.Phone, validation.Required),
	); err != nil {
		return err
	}

	if normalized, _ := NormalizePhone(contact.Phone); normalized == "" {
		return fmt.Errorf("phone: empty after normalization")
	}
	return nil
}

func validateMessage(message config.Message) error {
	return validation.ValidateStruct(&message,
		validation.Field(&message.Type,
			validation.Required,
			validation.In(config.MessageTypeText, config.MessageTypeImage),
		),
		validation.Field(&message.Time,
			validation.Required,
			validation.Match(timeOfDayRegex).Error("must be 24-hour HH:MM"),
		),
		validation.Field(&message.Content,
			validation.Required.When(message.Type == config.MessageTypeText),
		),
		validation.Field(&message.ImagePath,
			validation.Required.When(message.Type == config.MessageTypeImage),
		),
	)
}
