// Package catalog reads the static menu responses shown for the numbered
// menu options. The catalog is loaded once and never written.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jeanpaul/helpdesk/internal/schema"
)

// DefaultPath is where the catalog lives unless configured otherwise.
const DefaultPath = "responses.json"

// Section keys as they appear in the document.
const (
	KeyPayment              = "payment"
	KeyDelivery             = "delivery"
	KeySeasonalAvailability = "seasonal_availability"
	KeyContactInformation   = "contact_information"
	KeyOtherFAQ             = "other_faq"
	KeyFeedback             = "feedback"
)

var (
	// ErrCorrupt is returned by Read when the document is not valid JSON.
	ErrCorrupt = errors.New("response catalog is corrupt")

	// ErrMissingSection is wrapped by MissingSectionError.
	ErrMissingSection = errors.New("response catalog section missing")
)

// MissingSectionError names the section a menu option needed but the
// catalog did not provide.
type MissingSectionError struct {
	Key string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("%s: responses.%s", ErrMissingSection, e.Key)
}

func (e *MissingSectionError) Unwrap() error { return ErrMissingSection }

type Payment struct {
	Intro          string   `json:"intro"`
	Options        []string `json:"options"`
	IssueResponses []string `json:"issue_responses"`
}

type Delivery struct {
	Intro string `json:"intro"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
}

type SeasonalAvailability struct {
	Intro       string      `json:"intro"`
	SocialMedia SocialMedia `json:"social_media"`
}

type TelephoneNumbers struct {
	Business    string `json:"business"`
	Alternative string `json:"alternative"`
}

type ContactInformation struct {
	Intro            string           `json:"intro"`
	TelephoneNumbers TelephoneNumbers `json:"telephone_numbers"`
	SocialMediaLink  string           `json:"social_media_link"`
}

type OtherFAQ struct {
	Intro   string `json:"intro"`
	FAQLink string `json:"faq_link"`
}

type Feedback struct {
	IntroLowRating  string `json:"intro_low_rating"`
	IntroHighRating string `json:"intro_high_rating"`
	UserResponse    string `json:"user_response"`
}

// Responses holds the sections. A nil section is absent from the document.
type Responses struct {
	Payment              *Payment              `json:"payment,omitempty"`
	Delivery             *Delivery             `json:"delivery,omitempty"`
	SeasonalAvailability *SeasonalAvailability `json:"seasonal_availability,omitempty"`
	ContactInformation   *ContactInformation   `json:"contact_information,omitempty"`
	OtherFAQ             *OtherFAQ             `json:"other_faq,omitempty"`
	Feedback             *Feedback             `json:"feedback,omitempty"`
}

// Catalog is the whole responses document.
type Catalog struct {
	Responses Responses `json:"responses"`
}

// Empty returns a catalog with no sections.
func Empty() *Catalog {
	return &Catalog{}
}

// IsEmpty reports whether no section is present.
func (c *Catalog) IsEmpty() bool {
	return c.Responses == Responses{}
}

// Sections lists the keys of the sections that are present, in menu order.
func (c *Catalog) Sections() []string {
	var keys []string
	r := c.Responses
	if r.Payment != nil {
		keys = append(keys, KeyPayment)
	}
	if r.Delivery != nil {
		keys = append(keys, KeyDelivery)
	}
	if r.SeasonalAvailability != nil {
		keys = append(keys, KeySeasonalAvailability)
	}
	if r.ContactInformation != nil {
		keys = append(keys, KeyContactInformation)
	}
	if r.OtherFAQ != nil {
		keys = append(keys, KeyOtherFAQ)
	}
	if r.Feedback != nil {
		keys = append(keys, KeyFeedback)
	}
	return keys
}

func (c *Catalog) PaymentSection() (*Payment, error) {
	if c.Responses.Payment == nil {
		return nil, &MissingSectionError{Key: KeyPayment}
	}
	return c.Responses.Payment, nil
}

func (c *Catalog) DeliverySection() (*Delivery, error) {
	if c.Responses.Delivery == nil {
		return nil, &MissingSectionError{Key: KeyDelivery}
	}
	return c.Responses.Delivery, nil
}

func (c *Catalog) SeasonalAvailabilitySection() (*SeasonalAvailability, error) {
	if c.Responses.SeasonalAvailability == nil {
		return nil, &MissingSectionError{Key: KeySeasonalAvailability}
	}
	return c.Responses.SeasonalAvailability, nil
}

func (c *Catalog) ContactInformationSection() (*ContactInformation, error) {
	if c.Responses.ContactInformation == nil {
		return nil, &MissingSectionError{Key: KeyContactInformation}
	}
	return c.Responses.ContactInformation, nil
}

func (c *Catalog) OtherFAQSection() (*OtherFAQ, error) {
	if c.Responses.OtherFAQ == nil {
		return nil, &MissingSectionError{Key: KeyOtherFAQ}
	}
	return c.Responses.OtherFAQ, nil
}

func (c *Catalog) FeedbackSection() (*Feedback, error) {
	if c.Responses.Feedback == nil {
		return nil, &MissingSectionError{Key: KeyFeedback}
	}
	return c.Responses.Feedback, nil
}

var validator = schema.NewValidator()

// Read parses and validates the catalog at path without any recovery.
// Invalid JSON wraps ErrCorrupt; a document of the wrong shape returns a
// *schema.ValidationError naming the offending fields.
func Read(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w: invalid JSON", path, ErrCorrupt)
	}
	if err := validator.Validate(documentSchema, path, data); err != nil {
		return nil, err
	}

	c := Empty()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrCorrupt, err)
	}
	return c, nil
}

// Load reads the catalog at path. A missing or unparsable document yields
// an empty catalog and a warning on warn; nothing is written to disk. A
// document with the wrong shape is a packaging defect and is returned as an
// error.
func Load(path string, warn io.Writer) (*Catalog, error) {
	c, err := Read(path)
	if err == nil {
		return c, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrCorrupt) {
		fmt.Fprintf(warn, "Error: Could not load responses from %s.\n", path)
		return Empty(), nil
	}
	return nil, fmt.Errorf("load response catalog: %w", err)
}
