package entity

import "testing"

func equalSteps(a, b []EntryField) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWizardStepsCanonicalOrder(t *testing.T) {
	// The set is built in a deliberately scrambled order.
	set := NewFieldSet(FieldComments, FieldStartTime, FieldStress)

	steps := WizardSteps(set)
	want := []EntryField{FieldStartTime, FieldStress, FieldComments}
	if !equalSteps(steps, want) {
		t.Errorf("Expected %v, got %v", want, steps)
	}
}

func TestWizardStepsInsertionOrderIndependence(t *testing.T) {
	a := NewFieldSet(FieldPain, FieldActivity, FieldMood, FieldComments)
	b := NewFieldSet(FieldComments, FieldMood, FieldActivity, FieldPain)

	if !equalSteps(WizardSteps(a), WizardSteps(b)) {
		t.Errorf("Step order depends on how the set was built: %v vs %v", WizardSteps(a), WizardSteps(b))
	}
}

func TestWizardStepsFullSet(t *testing.T) {
	steps := WizardSteps(NewFieldSet(FieldOrder...))
	if !equalSteps(steps, FieldOrder) {
		t.Errorf("Full set should yield the canonical order, got %v", steps)
	}
}

func TestWizardStepsEmptySet(t *testing.T) {
	if steps := WizardSteps(NewFieldSet()); len(steps) != 0 {
		t.Errorf("Empty set should yield no steps, got %v", steps)
	}
}

func TestDefaultRequiredFields(t *testing.T) {
	set := DefaultRequiredFields()
	for _, f := range AlwaysRequired {
		if !set.Contains(f) {
			t.Errorf("Default set is missing %s", f)
		}
	}
	if len(set) != len(AlwaysRequired) {
		t.Errorf("Default set should hold exactly the always-required tags, got %v", set)
	}
}

func TestParseField(t *testing.T) {
	if f, ok := ParseField("mood"); !ok || f != FieldMood {
		t.Errorf("Expected mood to parse, got %v %v", f, ok)
	}
	if _, ok := ParseField("nonsense"); ok {
		t.Error("Unknown tag should not parse")
	}
}
