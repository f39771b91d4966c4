// Package i18n holds the user-visible strings and their translations.
//
// Message keys are the English format strings, so a printer for a language
// without a translation falls back to English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	MsgTenBrushes        = "Ten Brushes"
	MsgTenScripts        = "Ten Scripts"
	MsgActivatePreset    = "Activate Brush Preset %s"
	MsgExecuteScript     = "Execute Script %s"
	MsgPresetSelected    = "%s\nselected"
	MsgPresetUnassigned  = "No brush preset assigned to slot %s"
	MsgPresetFailed      = "Could not activate brush preset %s: %v"
	MsgNoActiveView      = "There is no active view"
	MsgScriptExecuted    = "Script %s executed"
	MsgScriptUnassigned  = "You did not assign a script to that action"
	MsgActivatePrevious  = "Activate previous brush preset when pressing the shortcut for the second time"
	MsgUnassigned        = "(unassigned)"
	MsgSettingsSaveError = "Could not save settings: %v"
)

var supported = []language.Tag{
	language.English,
	language.German,
}

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgTenBrushes:        "Zehn Pinsel",
		MsgTenScripts:        "Zehn Skripte",
		MsgActivatePreset:    "Pinselvoreinstellung %s aktivieren",
		MsgExecuteScript:     "Skript %s ausführen",
		MsgPresetSelected:    "%s\nausgewählt",
		MsgPresetUnassigned:  "Platz %s ist keine Pinselvoreinstellung zugewiesen",
		MsgPresetFailed:      "Pinselvoreinstellung %s konnte nicht aktiviert werden: %v",
		MsgNoActiveView:      "Es gibt keine aktive Ansicht",
		MsgScriptExecuted:    "Skript %s ausgeführt",
		MsgScriptUnassigned:  "Du hast dieser Aktion kein Skript zugewiesen",
		MsgActivatePrevious:  "Beim zweiten Drücken des Kürzels die vorherige Pinselvoreinstellung aktivieren",
		MsgUnassigned:        "(nicht zugewiesen)",
		MsgSettingsSaveError: "Einstellungen konnten nicht gespeichert werden: %v",
	},
}

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match returns the supported language closest to lang, which may be any
// BCP 47 tag ("de", "de-AT", "en-US"). Unparseable or empty input selects
// English.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, index, _ := matcher.Match(tag)
	return supported[index]
}

// NewPrinter returns a printer for the language closest to lang.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(cat))
}

// Default returns an English printer.
func Default() *message.Printer {
	return NewPrinter("en")
}

// Languages returns the supported languages.
func Languages() []language.Tag {
	return append([]language.Tag(nil), supported...)
}
