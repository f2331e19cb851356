package models

import (
	"strings"
	"time"
)

// JobCategory is the closed set of job functions.
type JobCategory string

const (
	CategoryEngineering JobCategory = "ENGINEERING"
	CategoryDesign      JobCategory = "DESIGN"
	CategoryProduct     JobCategory = "PRODUCT"
	CategoryMarketing   JobCategory = "MARKETING"
	CategorySales       JobCategory = "SALES"
	CategoryOperations  JobCategory = "OPERATIONS"
	CategoryFinance     JobCategory = "FINANCE"
	CategoryOther       JobCategory = "OTHER"
)

// ValidCategory reports whether s names a job category.
func ValidCategory(s string) bool {
	switch JobCategory(strings.ToUpper(s)) {
	case CategoryEngineering, CategoryDesign, CategoryProduct, CategoryMarketing,
		CategorySales, CategoryOperations, CategoryFinance, CategoryOther:
		return true
	}
	return false
}

// EmploymentType is the closed set of engagement types.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

// ValidEmploymentType reports whether s names an employment type.
func ValidEmploymentType(s string) bool {
	switch EmploymentType(strings.ToUpper(s)) {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// Job is a posting owned by exactly one employer profile. EmployerID never
// changes after creation.
type Job struct {
	ID             int64          `json:"id"`
	EmployerID     int64          `json:"employerId"`
	Title          string         `json:"title"`
	Category       JobCategory    `json:"category"`
	Description    string         `json:"description"`
	Requirements   string         `json:"requirements,omitempty"`
	Location       string         `json:"location,omitempty"`
	EmploymentType EmploymentType `json:"employmentType"`
	SalaryMin      *int64         `json:"salaryMin,omitempty"`
	SalaryMax      *int64         `json:"salaryMax,omitempty"`
	IsActive       bool           `json:"isActive"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`

	FormFields       []FormField `json:"formFields,omitempty"`
	ApplicationCount int64       `json:"applicationCount"`
}

// FieldType is the closed set of dynamic form input kinds.
type FieldType string

const (
	FieldText     FieldType = "TEXT"
	FieldTextarea FieldType = "TEXTAREA"
	FieldSelect   FieldType = "SELECT"
	FieldFile     FieldType = "FILE"
	FieldCheckbox FieldType = "CHECKBOX"
)

// ValidFieldType reports whether s names a form field type.
func ValidFieldType(s string) bool {
	switch FieldType(strings.ToUpper(s)) {
	case FieldText, FieldTextarea, FieldSelect, FieldFile, FieldCheckbox:
		return true
	}
	return false
}

// FormField describes one input on a job's application form.
type FormField struct {
	ID       int64     `json:"id"`
	JobID    int64     `json:"jobId"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Position int       `json:"position"`
}
