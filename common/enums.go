// Package common keeps enumerations shared by configuration, rendering and
// the HTTP API so none of them has to import the others.
package common

import "strings"

// Category of the investor update, drives report badge.
// ENUM(trainer-update, race-preview, race-result)
type UpdateType int

// Label returns human readable name used on report badge.
func (u UpdateType) Label() string {
	switch u {
	case UpdateTypeTrainerUpdate:
		return "Trainer Update"
	case UpdateTypeRacePreview:
		return "Race Preview"
	case UpdateTypeRaceResult:
		return "Race Result"
	default:
		return ""
	}
}

// Icon returns badge icon for the update category.
func (u UpdateType) Icon() string {
	switch u {
	case UpdateTypeTrainerUpdate:
		return "🏇"
	case UpdateTypeRacePreview:
		return "📢"
	case UpdateTypeRaceResult:
		return "🏆"
	default:
		return DefaultUpdateIcon
	}
}

// DefaultUpdateIcon is used for free form categories.
const DefaultUpdateIcon = "📝"

// LookupUpdateType accepts either enumeration name ("race-result") or label
// ("Race Result"), case insensitive.
func LookupUpdateType(s string) (UpdateType, bool) {
	s = strings.TrimSpace(s)
	if u, err := ParseUpdateType(strings.ToLower(s)); err == nil {
		return u, true
	}
	for _, name := range UpdateTypeNames() {
		u, _ := ParseUpdateType(name)
		if strings.EqualFold(u.Label(), s) {
			return u, true
		}
	}
	return UpdateType(0), false
}

// Visual style of produced report.
// ENUM(card, a4)
type ReportStyle int

// TemplateName returns name of embedded document template for the style.
func (s ReportStyle) TemplateName() string {
	switch s {
	case ReportStyleA4:
		return "a4.html.tmpl"
	default:
		return "card.html.tmpl"
	}
}
