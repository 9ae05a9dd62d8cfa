package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrMissingAppFields indicates that a name or url is not provided.
	ErrMissingAppFields = errors.New("models: missing app name or url")
	// ErrInvalidAppURL indicates that the url is not an absolute http(s) url.
	ErrInvalidAppURL = errors.New("models: invalid app url")
	// ErrNegativePoints indicates a negative reward.
	ErrNegativePoints = errors.New("models: points must not be negative")
	// ErrUnknownCategory indicates a category outside the catalog table.
	ErrUnknownCategory = errors.New("models: unknown category")
	// ErrUnknownSubCategory indicates a sub-category that does not belong to its category.
	ErrUnknownSubCategory = errors.New("models: unknown sub-category")
)

// CategoryNames lists the catalog categories in display order.
var CategoryNames = []string{"Social Media", "Productivity", "Entertainment"}

// Categories maps each catalog category to its sub-categories.
var Categories = map[string][]string{
	"Social Media":  {"Messaging", "Networking", "Photo Sharing"},
	"Productivity":  {"Time Management", "Note Taking", "Task Management"},
	"Entertainment": {"Games", "Music", "Video"},
}

// SubCategories returns the sub-categories of a category, or nil when the category is unknown.
func SubCategories(category string) []string {
	return Categories[category]
}

// ValidateCategory checks a category pair against the catalog table.
// An empty sub-category is accepted.
func ValidateCategory(category, subCategory string) error {
	subs, ok := Categories[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if subCategory == "" {
		return nil
	}
	for _, sub := range subs {
		if sub == subCategory {
			return nil
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrUnknownSubCategory, subCategory, category)
}

// Validate checks the fields of an add-app request.
func (req AddAppRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.URL) == "" {
		return ErrMissingAppFields
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAppURL, req.URL)
	}
	if req.Points < 0 {
		return ErrNegativePoints
	}
	return ValidateCategory(req.Category, req.SubCategory)
}
