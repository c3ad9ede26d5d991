package entity

// EntryField tags one attribute of a journal entry. The tags are pure
// configuration keys: a user's required-field set decides which wizard steps
// that user is shown, it never changes what an Entry can hold.
type EntryField string

const (
	FieldStartTime  EntryField = "startTime"
	FieldActivity   EntryField = "activity"
	FieldExperience EntryField = "experience"
	FieldMood       EntryField = "mood"
	FieldCondition  EntryField = "condition"
	FieldStress     EntryField = "stress"
	FieldControl    EntryField = "control"
	FieldChallenge  EntryField = "challenge"
	FieldEnergy     EntryField = "energy"
	FieldPain       EntryField = "pain"
	FieldComments   EntryField = "comments"
)

// FieldOrder is the canonical order of the wizard steps. Step computation
// always filters this sequence; the insertion order of a set never matters.
var FieldOrder = []EntryField{
	FieldStartTime,
	FieldActivity,
	FieldExperience,
	FieldMood,
	FieldCondition,
	FieldStress,
	FieldControl,
	FieldChallenge,
	FieldEnergy,
	FieldPain,
	FieldComments,
}

// AlwaysRequired are the tags every configuration screen force-includes.
// The model trusts its callers to include them; it does not add them itself.
var AlwaysRequired = []EntryField{FieldStartTime, FieldActivity, FieldExperience, FieldComments}

var fieldLabels = map[EntryField]string{
	FieldStartTime:  "Start Time",
	FieldActivity:   "Activity",
	FieldExperience: "Experience",
	FieldMood:       "Mood",
	FieldCondition:  "Condition",
	FieldStress:     "Stress",
	FieldControl:    "Control",
	FieldChallenge:  "Challenge",
	FieldEnergy:     "Energy",
	FieldPain:       "Pain",
	FieldComments:   "Comments",
}

// Label returns the display name of the field.
func (f EntryField) Label() string {
	return fieldLabels[f]
}

// ParseField maps s to a known field tag.
func ParseField(s string) (EntryField, bool) {
	f := EntryField(s)
	_, ok := fieldLabels[f]
	return f, ok
}

// FieldSet is an unordered set of entry field tags.
type FieldSet map[EntryField]bool

// NewFieldSet builds a set from the given tags.
func NewFieldSet(fields ...EntryField) FieldSet {
	s := make(FieldSet, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// DefaultRequiredFields is the set new users get when none is supplied.
func DefaultRequiredFields() FieldSet {
	return NewFieldSet(FieldStartTime, FieldActivity, FieldExperience, FieldComments)
}

// Contains reports whether f is in the set.
func (s FieldSet) Contains(f EntryField) bool {
	return s[f]
}

// Add puts f into the set.
func (s FieldSet) Add(f EntryField) {
	s[f] = true
}

// WizardSteps computes the ordered wizard steps for a required-field set by
// filtering the canonical order down to the tags present in the set. The
// result is deterministic no matter how the set was built.
func WizardSteps(required FieldSet) []EntryField {
	steps := make([]EntryField, 0, len(required))
	for _, f := range FieldOrder {
		if required.Contains(f) {
			steps = append(steps, f)
		}
	}
	return steps
}
