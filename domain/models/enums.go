package models

import "time"

// ========== Kanban columns ==========

type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "inprogress"
	ColumnDone       Column = "done"
)

// Columns ordered left to right on the board
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnDone}

func (c Column) Valid() bool {
	switch c {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

// ColumnTitles labels shown above each column
var ColumnTitles = map[Column]string{
	ColumnTodo:       "Da fare",
	ColumnInProgress: "In corso",
	ColumnDone:       "Completato",
}

// ========== Priority levels ==========

// Priority ordered Bassa < Media < Alta < Urgente
type Priority string

const (
	PriorityBassa   Priority = "Bassa"
	PriorityMedia   Priority = "Media"
	PriorityAlta    Priority = "Alta"
	PriorityUrgente Priority = "Urgente"
)

// Priorities in ascending order of importance
var Priorities = []Priority{PriorityBassa, PriorityMedia, PriorityAlta, PriorityUrgente}

func (p Priority) Valid() bool {
	switch p {
	case PriorityBassa, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// Rank is the in-column sort key: Urgente=0 ... Bassa=3, anything else sorts last
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgente:
		return 0
	case PriorityAlta:
		return 1
	case PriorityMedia:
		return 2
	case PriorityBassa:
		return 3
	}
	return 4
}

// ========== Board theme / icon ==========

type Theme string

const (
	ThemeBlue   Theme = "blue"
	ThemeGreen  Theme = "green"
	ThemePurple Theme = "purple"
	ThemeOrange Theme = "orange"
)

// ThemeClasses display classes per theme (only drives presentation)
var ThemeClasses = map[Theme]string{
	ThemeBlue:   "bg-blue-50 border-blue-200 text-blue-700",
	ThemeGreen:  "bg-green-50 border-green-200 text-green-700",
	ThemePurple: "bg-purple-50 border-purple-200 text-purple-700",
	ThemeOrange: "bg-orange-50 border-orange-200 text-orange-700",
}

func (t Theme) Valid() bool {
	_, ok := ThemeClasses[t]
	return ok
}

type Icon string

const (
	IconUniversity Icon = "university"
	IconPersonal   Icon = "personal"
	IconWork       Icon = "work"
	IconOther      Icon = "other"
)

func (i Icon) Valid() bool {
	switch i {
	case IconUniversity, IconPersonal, IconWork, IconOther:
		return true
	}
	return false
}

// ========== Category colors ==========

const DefaultCategoryClass = "bg-gray-100 text-gray-700"

// CategoryColorClasses maps a color token to its display class
var CategoryColorClasses = map[string]string{
	"blue":   "bg-blue-100 text-blue-700",
	"green":  "bg-green-100 text-green-700",
	"orange": "bg-orange-100 text-orange-700",
	"purple": "bg-purple-100 text-purple-700",
	"red":    "bg-red-100 text-red-700",
	"yellow": "bg-yellow-100 text-yellow-700",
	"pink":   "bg-pink-100 text-pink-700",
	"gray":   DefaultCategoryClass,
}

// CategoryClass falls back to DefaultCategoryClass for unknown tokens
func CategoryClass(color string) string {
	if class, ok := CategoryColorClasses[color]; ok {
		return class
	}
	return DefaultCategoryClass
}

// DefaultCategories seeded on every new board
var DefaultCategories = []struct {
	Name  string
	Color string
}{
	{Name: "Da fare", Color: "blue"},
	{Name: "In corso", Color: "orange"},
	{Name: "Completato", Color: "green"},
}

// ========== Reminder units ==========

type ReminderUnit string

const (
	UnitMinutes ReminderUnit = "minutes"
	UnitHours   ReminderUnit = "hours"
	UnitDays    ReminderUnit = "days"
)

func (u ReminderUnit) Valid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitDays:
		return true
	}
	return false
}

// Duration converts value*unit to a time.Duration
func (u ReminderUnit) Duration(value int) time.Duration {
	switch u {
	case UnitMinutes:
		return time.Duration(value) * time.Minute
	case UnitHours:
		return time.Duration(value) * time.Hour
	case UnitDays:
		return time.Duration(value) * 24 * time.Hour
	}
	return 0
}

// MaxRemindersPerPriority cap enforced by the reminder editor and the API
const MaxRemindersPerPriority = 3

// PriorityDefault display attributes seeded per (user, priority)
type PriorityDefault struct {
	Label       string
	Description string
	BgClass     string
	TextClass   string
}

var PriorityDefaults = map[Priority]PriorityDefault{
	PriorityBassa: {
		Label:       "Bassa",
		Description: "Attività senza urgenza",
		BgClass:     "bg-gray-100",
		TextClass:   "text-gray-700",
	},
	PriorityMedia: {
		Label:       "Media",
		Description: "Attività da completare a breve",
		BgClass:     "bg-blue-100",
		TextClass:   "text-blue-700",
	},
	PriorityAlta: {
		Label:       "Alta",
		Description: "Attività importanti",
		BgClass:     "bg-orange-100",
		TextClass:   "text-orange-700",
	},
	PriorityUrgente: {
		Label:       "Urgente",
		Description: "Attività da completare subito",
		BgClass:     "bg-red-100",
		TextClass:   "text-red-700",
	},
}
