package handlers

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// EmployerPayload is the create/update body for employer profiles. Create and
// update share the same schema; partial updates are not supported.
type EmployerPayload struct {
	CompanyName string `json:"companyName"`
	Website     string `json:"website"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
}

// Validate returns every violated field, not just the first.
func (p EmployerPayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	if p.CompanyName == "" {
		errs = append(errs, respond.FieldError{Field: "companyName", Message: "is required"})
	}
	if p.Website != "" && !validURL(p.Website) {
		errs = append(errs, respond.FieldError{Field: "website", Message: "must be a valid http(s) URL"})
	}
	return errs
}

func (p EmployerPayload) toInput() services.EmployerInput {
	return services.EmployerInput{
		CompanyName: p.CompanyName,
		Website:     p.Website,
		CompanySize: p.CompanySize,
		Industry:    p.Industry,
	}
}

// FormFieldPayload is one dynamic form field descriptor.
type FormFieldPayload struct {
	Label    string `json:"label"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Position int    `json:"position"`
}

func validateFormFields(fields []FormFieldPayload) []respond.FieldError {
	var errs []respond.FieldError
	for i, f := range fields {
		prefix := "formFields[" + strconv.Itoa(i) + "]."
		if f.Label == "" {
			errs = append(errs, respond.FieldError{Field: prefix + "label", Message: "is required"})
		}
		if !models.ValidFieldType(f.Type) {
			errs = append(errs, respond.FieldError{Field: prefix + "type", Message: "must be one of TEXT, TEXTAREA, SELECT, FILE, CHECKBOX"})
		}
	}
	return errs
}

func toFieldInputs(fields []FormFieldPayload) []services.FormFieldInput {
	out := make([]services.FormFieldInput, 0, len(fields))
	for _, f := range fields {
		out = append(out, services.FormFieldInput{
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
			Position: f.Position,
		})
	}
	return out
}

// JobPayload is the create body for jobs.
type JobPayload struct {
	Title          string             `json:"title"`
	Category       string             `json:"category"`
	Description    string             `json:"description"`
	Requirements   string             `json:"requirements"`
	Location       string             `json:"location"`
	EmploymentType string             `json:"employmentType"`
	SalaryMin      *int64             `json:"salaryMin"`
	SalaryMax      *int64             `json:"salaryMax"`
	ExpiresAt      *time.Time         `json:"expiresAt"`
	FormFields     []FormFieldPayload `json:"formFields"`
}

// Validate returns every violated field.
func (p JobPayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	if p.Title == "" {
		errs = append(errs, respond.FieldError{Field: "title", Message: "is required"})
	}
	if p.Category == "" {
		errs = append(errs, respond.FieldError{Field: "category", Message: "is required"})
	} else if !models.ValidCategory(p.Category) {
		errs = append(errs, respond.FieldError{Field: "category", Message: "is not a known job category"})
	}
	if p.Description == "" {
		errs = append(errs, respond.FieldError{Field: "description", Message: "is required"})
	}
	if p.EmploymentType == "" {
		errs = append(errs, respond.FieldError{Field: "employmentType", Message: "is required"})
	} else if !models.ValidEmploymentType(p.EmploymentType) {
		errs = append(errs, respond.FieldError{Field: "employmentType", Message: "is not a known employment type"})
	}
	errs = append(errs, validateSalary(p.SalaryMin, p.SalaryMax)...)
	errs = append(errs, validateFormFields(p.FormFields)...)
	return errs
}

func validateSalary(min, max *int64) []respond.FieldError {
	var errs []respond.FieldError
	if min != nil && *min <= 0 {
		errs = append(errs, respond.FieldError{Field: "salaryMin", Message: "must be positive"})
	}
	if max != nil && *max <= 0 {
		errs = append(errs, respond.FieldError{Field: "salaryMax", Message: "must be positive"})
	}
	if min != nil && max != nil && *max < *min {
		errs = append(errs, respond.FieldError{Field: "salaryMax", Message: "must not be below salaryMin"})
	}
	return errs
}

func (p JobPayload) toInput() services.JobInput {
	return services.JobInput{
		Title:          p.Title,
		Category:       p.Category,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		ExpiresAt:      p.ExpiresAt,
	}
}

// JobUpdatePayload is the partial update body for jobs. Absent fields stay
// untouched; a present formFields array replaces the whole set.
type JobUpdatePayload struct {
	Title          *string             `json:"title"`
	Category       *string             `json:"category"`
	Description    *string             `json:"description"`
	Requirements   *string             `json:"requirements"`
	Location       *string             `json:"location"`
	EmploymentType *string             `json:"employmentType"`
	SalaryMin      *int64              `json:"salaryMin"`
	SalaryMax      *int64              `json:"salaryMax"`
	IsActive       *bool               `json:"isActive"`
	ExpiresAt      *time.Time          `json:"expiresAt"`
	FormFields     *[]FormFieldPayload `json:"formFields"`
}

// Validate checks only the fields the payload supplies.
func (p JobUpdatePayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	if p.Title != nil && *p.Title == "" {
		errs = append(errs, respond.FieldError{Field: "title", Message: "must not be empty"})
	}
	if p.Category != nil && !models.ValidCategory(*p.Category) {
		errs = append(errs, respond.FieldError{Field: "category", Message: "is not a known job category"})
	}
	if p.Description != nil && *p.Description == "" {
		errs = append(errs, respond.FieldError{Field: "description", Message: "must not be empty"})
	}
	if p.EmploymentType != nil && !models.ValidEmploymentType(*p.EmploymentType) {
		errs = append(errs, respond.FieldError{Field: "employmentType", Message: "is not a known employment type"})
	}
	errs = append(errs, validateSalary(p.SalaryMin, p.SalaryMax)...)
	if p.FormFields != nil {
		errs = append(errs, validateFormFields(*p.FormFields)...)
	}
	return errs
}

func (p JobUpdatePayload) toUpdate() services.JobUpdate {
	upd := services.JobUpdate{
		Title:          p.Title,
		Category:       p.Category,
		Description:    p.Description,
		Requirements:   p.Requirements,
		Location:       p.Location,
		EmploymentType: p.EmploymentType,
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		IsActive:       p.IsActive,
		ExpiresAt:      p.ExpiresAt,
	}
	if p.FormFields != nil {
		inputs := toFieldInputs(*p.FormFields)
		upd.Fields = &inputs
	}
	return upd
}

// JobSeekerPayload is the create body for job seeker profiles.
type JobSeekerPayload struct {
	Headline  string `json:"headline"`
	ResumeURL string `json:"resumeUrl"`
	Skills    string `json:"skills"`
}

// Validate returns every violated field.
func (p JobSeekerPayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	if p.ResumeURL != "" && !validURL(p.ResumeURL) {
		errs = append(errs, respond.FieldError{Field: "resumeUrl", Message: "must be a valid http(s) URL"})
	}
	return errs
}

// ApplyPayload is the body for submitting an application.
type ApplyPayload struct {
	Responses []struct {
		FormFieldID int64  `json:"formFieldId"`
		Value       string `json:"value"`
	} `json:"responses"`
}

// Validate returns every violated field.
func (p ApplyPayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	for i, r := range p.Responses {
		if r.FormFieldID < 1 {
			errs = append(errs, respond.FieldError{
				Field:   "responses[" + strconv.Itoa(i) + "].formFieldId",
				Message: "must be a positive integer",
			})
		}
	}
	return errs
}

func (p ApplyPayload) toInputs() []services.ResponseInput {
	out := make([]services.ResponseInput, 0, len(p.Responses))
	for _, r := range p.Responses {
		out = append(out, services.ResponseInput{FormFieldID: r.FormFieldID, Value: r.Value})
	}
	return out
}
