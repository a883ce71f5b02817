package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/geekpie/portfolio-backend/internal/models"
)

// Константы валидации
const (
	MaxTitleLength            = 200
	MaxShortDescriptionLength = 300
	MinContactNameLength      = 2
	MinContactMessageLength   = 10
)

// FieldError описывает ошибку валидации одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ContentInput содержит проверяемые поля записи контента.
type ContentInput struct {
	Title            string
	Description      string
	ShortDescription string
	Category         string
	Status           string
}

// ValidateContent проверяет поля записи и возвращает список ошибок по полям.
func ValidateContent(in ContentInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "заголовок обязателен"})
	} else if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("заголовок должен быть не более %d символов", MaxTitleLength)})
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "описание обязательно"})
	}

	if utf8.RuneCountInString(in.ShortDescription) > MaxShortDescriptionLength {
		errs = append(errs, FieldError{Field: "shortDescription", Message: fmt.Sprintf("краткое описание должно быть не более %d символов", MaxShortDescriptionLength)})
	}

	if in.Category != "" {
		if _, ok := models.ValidCategories[in.Category]; !ok {
			errs = append(errs, FieldError{Field: "category", Message: "недопустимая категория"})
		}
	}

	if in.Status != "" {
		if _, ok := models.ValidStatuses[in.Status]; !ok {
			errs = append(errs, FieldError{Field: "status", Message: "недопустимый статус"})
		}
	}

	return errs
}

// ValidateEmail проверяет базовый формат email.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	local, domain := parts[0], parts[1]
	if len(local) == 0 || len(local) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domain) == 0 || len(domain) > 255 || !strings.Contains(domain, ".") {
		return fmt.Errorf("некорректный домен email")
	}

	return nil
}

// ValidateContactForm проверяет поля контактной формы.
func ValidateContactForm(name, email, message string) []FieldError {
	var errs []FieldError

	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinContactNameLength {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("имя обязательно, не менее %d символов", MinContactNameLength)})
	}

	if err := ValidateEmail(email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: err.Error()})
	}

	if utf8.RuneCountInString(strings.TrimSpace(message)) < MinContactMessageLength {
		errs = append(errs, FieldError{Field: "message", Message: fmt.Sprintf("сообщение обязательно, не менее %d символов", MinContactMessageLength)})
	}

	return errs
}
