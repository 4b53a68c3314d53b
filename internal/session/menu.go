package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeanpaul/helpdesk/internal/tui"
)

// Menu option codes typed by the user.
const (
	CodePayment              = "1"
	CodeDelivery             = "2"
	CodeSeasonalAvailability = "3"
	CodeContactInformation   = "4"
	CodeOtherFAQ             = "5"
	CodeFeedback             = "6"
)

// IsMenuCode reports whether code selects a menu option.
func IsMenuCode(code string) bool {
	switch code {
	case CodePayment, CodeDelivery, CodeSeasonalAvailability,
		CodeContactInformation, CodeOtherFAQ, CodeFeedback:
		return true
	}
	return false
}

func (s *Session) renderMenu(ctx context.Context, code string) error {
	switch code {
	case CodePayment:
		return s.renderPayment()
	case CodeDelivery:
		return s.renderDelivery()
	case CodeSeasonalAvailability:
		return s.renderSeasonalAvailability()
	case CodeContactInformation:
		return s.renderContactInformation()
	case CodeOtherFAQ:
		return s.renderOtherFAQ()
	case CodeFeedback:
		return s.renderFeedback(ctx)
	}
	return fmt.Errorf("unknown menu code %q", code)
}

func (s *Session) renderPayment() error {
	p, err := s.catalog.PaymentSection()
	if err != nil {
		return err
	}
	if len(p.IssueResponses) < 2 {
		return fmt.Errorf("responses.payment.issue_responses: need at least 2 entries, have %d", len(p.IssueResponses))
	}
	s.say(p.Intro)
	s.say("\nThe available payment options are:")
	for _, opt := range p.Options {
		s.say("* " + opt)
	}
	s.say(p.IssueResponses[1])
	return nil
}

func (s *Session) renderDelivery() error {
	d, err := s.catalog.DeliverySection()
	if err != nil {
		return err
	}
	s.say(d.Intro)
	return nil
}

func (s *Session) renderSeasonalAvailability() error {
	sa, err := s.catalog.SeasonalAvailabilitySection()
	if err != nil {
		return err
	}
	s.say(sa.Intro)
	s.say("Facebook: " + sa.SocialMedia.Facebook)
	s.say("Twitter: " + sa.SocialMedia.Twitter)
	s.say("Instagram: " + sa.SocialMedia.Instagram)
	return nil
}

func (s *Session) renderContactInformation() error {
	c, err := s.catalog.ContactInformationSection()
	if err != nil {
		return err
	}
	s.say(c.Intro)
	s.say("Business Telephone: " + c.TelephoneNumbers.Business)
	s.say("Phone Number Alternative: " + c.TelephoneNumbers.Alternative)
	s.say(fmt.Sprintf("You may reach us at our customer service social media page where our staff can assist you better. "+
		"You can head over there using this link: %s or search us on our social media handles @(BusinessName).", c.SocialMediaLink))
	return nil
}

func (s *Session) renderOtherFAQ() error {
	f, err := s.catalog.OtherFAQSection()
	if err != nil {
		return err
	}
	s.say(f.Intro)
	s.say("If you have any concerns that’s not listed in the FAQ, you can check out our FAQ section on our website through this link: " + f.FAQLink)
	s.say("You can also reach out to our contact information for assistance.")
	return nil
}

// Rating is the branch a feedback score selects.
type Rating int

const (
	RatingInvalid Rating = iota
	RatingLow
	RatingHigh
)

func (r Rating) String() string {
	switch r {
	case RatingLow:
		return "low"
	case RatingHigh:
		return "high"
	default:
		return "invalid"
	}
}

// ErrInvalidRating is returned by ParseRating for input that is not an integer.
var ErrInvalidRating = errors.New("invalid rating")

// ParseRating classifies a feedback score. Scores up to 4 are low and scores
// from 5 are high; the advertised 1-10 range is not enforced.
func ParseRating(input string) (Rating, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return RatingInvalid, fmt.Errorf("%w %q: not a whole number", ErrInvalidRating, input)
	}
	if n <= 4 {
		return RatingLow, nil
	}
	return RatingHigh, nil
}

func (s *Session) renderFeedback(ctx context.Context) error {
	f, err := s.catalog.FeedbackSection()
	if err != nil {
		return err
	}

	s.say("How would you rate our services on a scale of 1-10?")
	input, err := s.readLine(ctx, "Your rating: ")
	if errors.Is(err, io.EOF) {
		s.state = StateExited
		return nil
	}
	if err != nil {
		return err
	}

	rating, err := ParseRating(input)
	if err != nil {
		msg := "Invalid rating. Please provide a rating between 1 and 10."
		fmt.Fprintln(s.out, tui.ErrorStyle.Render(fmt.Sprintf("%s (%v)", msg, err)))
		s.record(RoleBot, msg)
		return nil
	}

	if rating == RatingLow {
		s.say(f.IntroLowRating)
	} else {
		s.say(f.IntroHighRating)
	}

	// The feedback text is read but not stored anywhere.
	s.say("*User will type message*")
	if _, err := s.readLine(ctx, ""); err != nil {
		if errors.Is(err, io.EOF) {
			s.state = StateExited
			return nil
		}
		return err
	}
	s.say(f.UserResponse)
	return nil
}
