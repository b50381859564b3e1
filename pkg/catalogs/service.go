package catalogs

import (
	"fmt"
	"strings"
)

// Service is one record of the flat service catalog. Group, type and
// service identifiers together form the record's key.
type Service struct {
	// Hierarchy identity
	GroupID   Identifier `json:"serviceGroupId" yaml:"serviceGroupId"`     // Service group identifier
	GroupText string     `json:"serviceGroupText" yaml:"serviceGroupText"` // Service group display text
	TypeID    Identifier `json:"serviceTypeId" yaml:"serviceTypeId"`       // Service type identifier
	TypeText  string     `json:"serviceTypeText" yaml:"serviceTypeText"`   // Service type display text
	ID        Identifier `json:"serviceId" yaml:"serviceId"`               // Service identifier
	Text      string     `json:"serviceText" yaml:"serviceText"`           // Service display text

	// Classification
	ContributionCategory string `json:"participantContributionCategory,omitempty" yaml:"participantContributionCategory,omitempty"` // Participant contribution category
	UnitType             string `json:"unitType,omitempty" yaml:"unitType,omitempty"`                                               // Unit of measure for claims

	// Nested collections
	Classifications         []Classification         `json:"classifications,omitempty" yaml:"classifications,omitempty"`
	Items                   []Item                   `json:"items,omitempty" yaml:"items,omitempty"`
	WraparoundServices      []WraparoundService      `json:"wraparoundServices,omitempty" yaml:"wraparoundServices,omitempty"`
	ItemCategories          []ItemCategory           `json:"itemCategories,omitempty" yaml:"itemCategories,omitempty"`
	HealthProfessionalTypes []HealthProfessionalType `json:"healthProfessionalTypes,omitempty" yaml:"healthProfessionalTypes,omitempty"`
}

// Classification is a typed classification label (e.g. "Ongoing", "Short Term").
type Classification struct {
	Code string `json:"classificationCode,omitempty" yaml:"classificationCode,omitempty"`
	Type string `json:"classificationType,omitempty" yaml:"classificationType,omitempty"`
	Text string `json:"classificationText" yaml:"classificationText"`
}

// Item is a claimable item of a service.
type Item struct {
	ID               Identifier `json:"itemId" yaml:"itemId"`
	Text             string     `json:"itemText" yaml:"itemText"`
	FunctionText     string     `json:"functionText,omitempty" yaml:"functionText,omitempty"`
	Units            []string   `json:"units,omitempty" yaml:"units,omitempty"`
	FreeTextRequired bool       `json:"freeTextRequired,omitempty" yaml:"freeTextRequired,omitempty"`
}

// WraparoundService is a supporting service delivered alongside a service.
type WraparoundService struct {
	ID               Identifier `json:"wraparoundServiceId" yaml:"wraparoundServiceId"`
	Text             string     `json:"wraparoundServiceText" yaml:"wraparoundServiceText"`
	Units            []string   `json:"units,omitempty" yaml:"units,omitempty"`
	FreeTextRequired bool       `json:"freeTextRequired,omitempty" yaml:"freeTextRequired,omitempty"`
}

// ItemCategory groups items for claiming.
type ItemCategory struct {
	Code             string `json:"itemCategoryCode" yaml:"itemCategoryCode"`
	Text             string `json:"itemCategoryText" yaml:"itemCategoryText"`
	FreeTextRequired bool   `json:"freeTextRequired,omitempty" yaml:"freeTextRequired,omitempty"`
}

// HealthProfessionalType is a professional type allowed to deliver a service.
type HealthProfessionalType struct {
	Code             string `json:"healthProfessionalTypeCode" yaml:"healthProfessionalTypeCode"`
	Text             string `json:"healthProfessionalTypeText" yaml:"healthProfessionalTypeText"`
	FreeTextRequired bool   `json:"freeTextRequired,omitempty" yaml:"freeTextRequired,omitempty"`
}

// Key returns the composite group/type/service key of the record.
func (s Service) Key() string {
	return fmt.Sprintf("%s/%s/%s", s.GroupID, s.TypeID, s.ID)
}

// AppendStrings appends the record's searchable text to dst: display
// texts, units, function texts and string codes. Identifiers are left out.
func (s Service) AppendStrings(dst []string) []string {
	dst = append(dst,
		s.GroupText, s.TypeText, s.Text,
		s.ContributionCategory, s.UnitType,
	)
	for _, c := range s.Classifications {
		dst = c.AppendStrings(dst)
	}
	for _, it := range s.Items {
		dst = append(dst, it.Text, it.FunctionText)
		dst = append(dst, it.Units...)
	}
	for _, w := range s.WraparoundServices {
		dst = append(dst, w.Text)
		dst = append(dst, w.Units...)
	}
	for _, ic := range s.ItemCategories {
		dst = append(dst, ic.Code, ic.Text)
	}
	for _, h := range s.HealthProfessionalTypes {
		dst = append(dst, h.Code, h.Text)
	}
	return dst
}

// AppendStrings appends the classification's strings to dst.
func (c Classification) AppendStrings(dst []string) []string {
	return append(dst, c.Code, c.Type, c.Text)
}

// UniqueItems returns the service's items de-duplicated by trimmed item
// text, keeping the first occurrence. Items without text are dropped.
func (s Service) UniqueItems() []Item {
	seen := make(map[string]struct{}, len(s.Items))
	out := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, it)
	}
	return out
}

// ClassificationTexts returns the text of each classification in order.
func (s Service) ClassificationTexts() []string {
	out := make([]string, 0, len(s.Classifications))
	for _, c := range s.Classifications {
		out = append(out, c.Text)
	}
	return out
}
